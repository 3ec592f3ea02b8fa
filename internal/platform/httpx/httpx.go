// Package httpx junta los helpers HTTP que antes estaban duplicados en cada handler.
package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/platform/validation"
)

// ErrInvalidBody envuelve errores de decode/validación del body.
var ErrInvalidBody = errors.New("invalid body")

type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorBody{Error: errorInfo{Code: code, Message: message}})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Common errors
func Unauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
}

func Forbidden(w http.ResponseWriter) {
	WriteError(w, http.StatusForbidden, "FORBIDDEN", "forbidden")
}

func NotFound(w http.ResponseWriter, what string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", what+" not found")
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "INVALID_INPUT", message)
}

func Internal(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}

// ServerError loguea la falla con el request id y responde 500 sin exponer el detalle.
func ServerError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(r.Context(), msg,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimw.GetReqID(r.Context()),
		"err", err,
	)
	Internal(w)
}

// DecodeJSON decodifica el body y corre las reglas `validate:"..."` del struct.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(ErrInvalidBody, "invalid json")
	}
	if err := validation.Struct(v); err != nil {
		return errors.Wrap(ErrInvalidBody, validation.Message(err))
	}
	return nil
}

// ErrUploadTooLarge se devuelve cuando el archivo supera el límite.
var ErrUploadTooLarge = errors.New("upload too large")

// ReadUpload lee un archivo multipart (campo field) con un tope de max bytes.
func ReadUpload(w http.ResponseWriter, r *http.Request, field string, max int64) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, max+1024)
	if err := r.ParseMultipartForm(max); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return "", nil, ErrUploadTooLarge
		}
		return "", nil, errors.Wrap(ErrInvalidBody, "invalid multipart form")
	}

	f, hdr, err := r.FormFile(field)
	if err != nil {
		return "", nil, errors.Wrapf(ErrInvalidBody, "missing file field %q", field)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return "", nil, errors.Wrap(err, "read upload")
	}
	if int64(len(data)) > max {
		return "", nil, ErrUploadTooLarge
	}
	return hdr.Filename, data, nil
}
