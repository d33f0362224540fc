package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/WardLink/WL-Backend/internal/utils"
)

type fakeFetcher struct {
	sessions map[string]utils.SessionData
}

func (f fakeFetcher) FindSessionByID(id string) (utils.SessionData, error) {
	s, ok := f.sessions[id]
	if !ok {
		return utils.SessionData{}, errors.New("not found")
	}
	return s, nil
}

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		if wantUserID != "" {
			if !ok || userID != wantUserID {
				t.Errorf("user ID in context = %q, %v; want %q", userID, ok, wantUserID)
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware(t *testing.T) {
	fetcher := fakeFetcher{sessions: map[string]utils.SessionData{
		"good":    {UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)},
		"expired": {UserID: "user-2", ExpiresAt: time.Now().Add(-time.Hour)},
	}}

	t.Run("missing cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		SessionMiddleware(fetcher)(okHandler(t, "")).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "nope"})
		SessionMiddleware(fetcher)(okHandler(t, "")).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "expired"})
		SessionMiddleware(fetcher)(okHandler(t, "")).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session_id", Value: "good"})
		SessionMiddleware(fetcher)(okHandler(t, "user-1")).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allowed origin echoed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})

	t.Run("unknown origin not echoed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("x-cache exposed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if got := rec.Header().Get("Access-Control-Expose-Headers"); got != "X-Cache, Retry-After, Cache-Control" {
			t.Errorf("Expose-Headers = %q", got)
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimitMiddleware(rate.Limit(1), 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2, then rejected.
	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("first request = %d", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Errorf("second request = %d", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", code)
	}

	// Limits are per client address.
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("other client = %d, want 200", code)
	}
}
