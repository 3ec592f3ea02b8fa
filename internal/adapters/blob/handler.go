package blob

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"pet-grooming-agenda/internal/platform/httpx"
	"pet-grooming-agenda/internal/ports/blobstore"
)

// RegisterRoutes sirve GET /media/{bucket}/* para que las URLs públicas resuelvan
// cuando el bucket no es público por sí mismo (mem://, file://).
func RegisterRoutes(r chi.Router, store blobstore.Store) {
	r.Get("/media/{bucket}/*", func(w http.ResponseWriter, req *http.Request) {
		rc, ct, err := store.Open(req.Context(), chi.URLParam(req, "bucket"), chi.URLParam(req, "*"))
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				httpx.NotFound(w, "object")
				return
			}
			httpx.Internal(w)
			return
		}
		defer rc.Close()

		if ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	})
}
