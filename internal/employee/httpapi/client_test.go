package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nathanbeddoewebdev/staffdesk/internal/employee"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithToken("test-token"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("role"); got != "employee" {
			t.Errorf("role query = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			t.Errorf("X-Request-ID is not a uuid: %q", r.Header.Get("X-Request-ID"))
		}
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "1", "name": "Ana", "email": "ana@example.com", "phoneNo": "5551234567", "role": "employee"},
		})
	})

	got, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []employee.Record{{ID: "1", Name: "Ana", Email: "ana@example.com", PhoneNo: "5551234567", Role: "employee"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ListWrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"users": []map[string]any{{"_id": "2", "name": "Bo"}},
		})
	})

	got, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("unexpected records %+v", got)
	}
}

func TestClient_CreateSendsPassword(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/employee" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusCreated, map[string]any{
			"user": map[string]any{"_id": "new-1", "name": "Bo", "role": "employee"},
		})
	})

	rec, err := client.Create(context.Background(), employee.CreatePayload{
		Name: "Bo", Email: "bo@example.com", PhoneNo: "5559876543", Password: "secret1", Role: "employee",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID != "new-1" {
		t.Errorf("ID = %q", rec.ID)
	}

	want := map[string]any{
		"name": "Bo", "email": "bo@example.com", "phoneNo": "5559876543", "password": "secret1", "role": "employee",
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_UpdateOmitsPassword(t *testing.T) {
	var raw string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/emp-7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		raw = string(data)
		w.WriteHeader(http.StatusNoContent)
	})

	rec, err := client.Update(context.Background(), employee.UpdatePayload{ID: "emp-7", Name: "Ana", Role: "employee"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.ID != "emp-7" {
		t.Errorf("ID = %q, want fallback to payload ID", rec.ID)
	}
	if strings.Contains(raw, "password") {
		t.Errorf("update body contains password: %s", raw)
	}
	if !strings.Contains(raw, `"userId":"emp-7"`) {
		t.Errorf("update body missing userId: %s", raw)
	}
}

func TestClient_UpdateRequiresID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	if _, err := client.Update(context.Background(), employee.UpdatePayload{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_ValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Validation failed",
			"errors":  map[string]string{"email": "Email already in use"},
		})
	})

	_, err := client.Create(context.Background(), employee.CreatePayload{Name: "Bo"})

	var verr *employee.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T %v", err, err)
	}
	want := map[employee.Field]string{employee.FieldEmail: "Email already in use"}
	if diff := cmp.Diff(want, verr.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		wantMsg  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"jwt expired"}`, employee.ErrUnauthorized, "jwt expired"},
		{"forbidden", http.StatusForbidden, `{"error":"admins only"}`, employee.ErrUnauthorized, "admins only"},
		{"not found", http.StatusNotFound, `{}`, employee.ErrNotFound, "Not Found"},
		{"conflict", http.StatusConflict, `{"message":"duplicate email"}`, employee.ErrConflict, "duplicate email"},
		{"rate limited", http.StatusTooManyRequests, ``, employee.ErrRateLimited, "Too Many Requests"},
		{"bad request without fields", http.StatusBadRequest, `{"message":"bad"}`, nil, "bad"},
		{"plain text", http.StatusInternalServerError, `upstream exploded`, nil, "upstream exploded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.List(context.Background())

			var serr *employee.ServerError
			if !errors.As(err, &serr) {
				t.Fatalf("expected ServerError, got %T %v", err, err)
			}
			if serr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", serr.StatusCode, tt.status)
			}
			if serr.RequestID == "" {
				t.Error("expected request ID on server error")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("expected errors.Is(%v)", tt.sentinel)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("unexpected Authorization header %q", h)
		}
		writeJSON(w, http.StatusOK, []any{})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.List(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
