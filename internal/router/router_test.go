package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-grooming-agenda/internal/router"
)

const adminID = "admin-1"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(router.Options{BootstrapAdmins: []string{adminID}})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_BookingLifecycle(t *testing.T) {
	ts := newServer(t)
	clientID := "client-1"
	date := time.Now().UTC().AddDate(0, 0, 3).Format("2006-01-02")

	// 1) Sign-in de ambos: el admin cae en el dashboard, el cliente en HOME
	{
		st, body := doReq(t, ts.URL, "POST", "/session", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin session, got %d body=%s", st, string(body))
		}
		var out struct {
			Role    string `json:"role"`
			Landing struct {
				Name string `json:"name"`
			} `json:"landing"`
		}
		mustDecode(t, body, &out)
		if out.Role != "ADMIN" || out.Landing.Name != "ADMIN_DASHBOARD" {
			t.Fatalf("unexpected admin session: %s", string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/session", clientID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 client session, got %d body=%s", st, string(body))
		}
		mustDecode(t, body, &out)
		if out.Role != "CLIENT" || out.Landing.Name != "HOME" {
			t.Fatalf("unexpected client session: %s", string(body))
		}
	}

	// 2) Admin carga un servicio
	serviceID := createID(t, ts.URL, "POST", "/admin/services", adminID, map[string]any{
		"name":     "Banho",
		"price":    60,
		"duration": "1h",
		"rating":   4.5,
	})

	// 3) Cliente registra mascota y reserva
	petID := createID(t, ts.URL, "POST", "/pets", clientID, map[string]any{
		"name":  "Rex",
		"breed": "Poodle",
		"age":   "3",
		"type":  "dog",
	})
	apptID := createID(t, ts.URL, "POST", "/appointments", clientID, map[string]any{
		"pet_id":         petID,
		"service_id":     serviceID,
		"scheduled_date": date,
		"scheduled_time": "10:00",
	})

	// 4) Admin ve el turno pendiente en la agenda del día
	{
		st, body := doReq(t, ts.URL, "GET", "/admin/appointments?date="+date, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 agenda, got %d body=%s", st, string(body))
		}
		var out struct {
			Items        []map[string]any `json:"items"`
			PendingCount int              `json:"pending_count"`
		}
		mustDecode(t, body, &out)
		if len(out.Items) != 1 || out.PendingCount != 1 {
			t.Fatalf("unexpected agenda: %s", string(body))
		}
	}

	// 5) PENDING -> CONFIRMED -> COMPLETED
	for _, to := range []string{"CONFIRMED", "COMPLETED"} {
		st, body := doReq(t, ts.URL, "PATCH", "/admin/appointments/"+apptID+"/status", adminID, map[string]any{"status": to})
		if st != http.StatusOK {
			t.Fatalf("expected 200 status %s, got %d body=%s", to, st, string(body))
		}
	}

	// 6) COMPLETED ya no se puede rechazar ni borrar
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/admin/appointments/"+apptID+"/status", adminID, map[string]any{"status": "CANCELED"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 rejecting completed, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/appointments/"+apptID, clientID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 deleting completed, got %d", st)
		}
	}

	// 7) Historial de actividad visible para el dueño
	{
		st, body := doReq(t, ts.URL, "GET", "/appointments/"+apptID+"/activity", clientID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 activity, got %d body=%s", st, string(body))
		}
		var out []map[string]any
		mustDecode(t, body, &out)
		if len(out) != 3 {
			t.Fatalf("expected 3 activity entries, got %d body=%s", len(out), string(body))
		}
	}
}

func TestHTTP_DeletePendingRemovesEverywhere(t *testing.T) {
	ts := newServer(t)
	clientID := "client-2"
	date := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	doReq(t, ts.URL, "POST", "/session", adminID, nil)
	serviceID := createID(t, ts.URL, "POST", "/admin/services", adminID, map[string]any{"name": "Tosa", "price": 45})
	petID := createID(t, ts.URL, "POST", "/pets", clientID, map[string]any{"name": "Mia", "type": "cat"})
	apptID := createID(t, ts.URL, "POST", "/appointments", clientID, map[string]any{
		"pet_id":         petID,
		"service_id":     serviceID,
		"scheduled_date": date,
		"scheduled_time": "14:30",
	})

	st, body := doReq(t, ts.URL, "DELETE", "/appointments/"+apptID, clientID, nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/appointments?view=all", clientID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d", st)
	}
	var mine struct {
		Upcoming []map[string]any `json:"upcoming"`
		History  []map[string]any `json:"history"`
	}
	mustDecode(t, body, &mine)
	if len(mine.Upcoming)+len(mine.History) != 0 {
		t.Fatalf("deleted appointment still listed: %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/admin/appointments?date="+date, adminID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 agenda, got %d", st)
	}
	var agenda struct {
		Items []map[string]any `json:"items"`
	}
	mustDecode(t, body, &agenda)
	if len(agenda.Items) != 0 {
		t.Fatalf("deleted appointment still in agenda: %s", string(body))
	}
}

func TestHTTP_AuthAndRoles(t *testing.T) {
	ts := newServer(t)

	if st, _ := doReq(t, ts.URL, "GET", "/pets", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous pets, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/admin/dashboard", "client-3", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 client on admin, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/services", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 public services, got %d", st)
	}

	doReq(t, ts.URL, "POST", "/session", adminID, nil)
	if st, body := doReq(t, ts.URL, "GET", "/admin/dashboard", adminID, nil); st != http.StatusOK {
		t.Fatalf("expected 200 admin dashboard, got %d body=%s", st, string(body))
	}
}

func TestHTTP_ProfileAbsentThenUpserted(t *testing.T) {
	ts := newServer(t)
	uid := "client-4"

	st, body := doReq(t, ts.URL, "GET", "/me/profile", uid, nil)
	if st != http.StatusOK || !bytes.Contains(body, []byte(`"profile":null`)) {
		t.Fatalf("expected null profile, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "PUT", "/me/profile", uid, map[string]any{"full_name": "Ana", "phone": "555"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 upsert, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/me/profile", uid, nil)
	if st != http.StatusOK || !bytes.Contains(body, []byte(`"Ana"`)) {
		t.Fatalf("expected stored profile, got %d body=%s", st, string(body))
	}
}

func TestHTTP_Settings(t *testing.T) {
	ts := newServer(t)
	doReq(t, ts.URL, "POST", "/session", adminID, nil)

	st, body := doReq(t, ts.URL, "GET", "/admin/settings/notifications", adminID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 default settings, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "PUT", "/admin/settings/payment_methods", adminID, map[string]any{
		"pix": true, "cash": true, "credit": false, "debit": false,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 upsert settings, got %d body=%s", st, string(body))
	}

	if st, _ := doReq(t, ts.URL, "GET", "/admin/settings/unknown", adminID, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown category, got %d", st)
	}
}

func createID(t *testing.T, baseURL, method, path, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, method, path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 %s %s, got %d body=%s", method, path, st, string(body))
	}
	var out struct {
		ID string `json:"id"`
	}
	mustDecode(t, body, &out)
	if out.ID == "" {
		t.Fatalf("missing id in response: %s", string(body))
	}
	return out.ID
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
