package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/KAKADIVA/testePFI/internal/throttle"
)

// failingServer rejects every login and counts how many requests arrive.
func failingServer(hits *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"mensagem":"E-mail ou senha inválidos!"}`))
	}))
}

func newGuard(t *testing.T) *throttle.Guard {
	t.Helper()
	return throttle.NewGuard(throttle.NewFileStore(filepath.Join(t.TempDir(), "state.json")))
}

// TestLogin_ThrottleBlocksSixthAttempt verifies five failures lock the
// client and the sixth attempt never reaches the server.
func TestLogin_ThrottleBlocksSixthAttempt(t *testing.T) {
	var hits int
	srv := failingServer(&hits)
	defer srv.Close()

	c := New(srv.URL, newGuard(t))

	for i := 0; i < throttle.MaxFailures; i++ {
		_, err := c.Login("ana@x.com", "errada")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v, want ErrInvalidCredentials", i+1, err)
		}
	}
	if hits != throttle.MaxFailures {
		t.Fatalf("server hits = %d, want %d", hits, throttle.MaxFailures)
	}

	_, err := c.Login("ana@x.com", "errada")
	var locked *throttle.ErrLocked
	if !errors.As(err, &locked) {
		t.Fatalf("sixth attempt err = %v, want *throttle.ErrLocked", err)
	}
	if hits != throttle.MaxFailures {
		t.Errorf("server hits after lock = %d, want %d (locked attempt must stay local)", hits, throttle.MaxFailures)
	}
}

// TestLogin_SuccessResetsThrottle verifies a successful login clears the
// failure count.
func TestLogin_SuccessResetsThrottle(t *testing.T) {
	pass := false
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if pass {
			_, _ = w.Write([]byte(`{"id":1,"nome":"Ana","profissional":false}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	guard := newGuard(t)
	c := New(srv.URL, guard)

	for i := 0; i < throttle.MaxFailures-1; i++ {
		if _, err := c.Login("ana@x.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}

	pass = true
	id, err := c.Login("ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("successful login: %v", err)
	}
	if id.Nome != "Ana" {
		t.Errorf("identity = %+v", id)
	}
	if got := guard.Remaining(); got != throttle.MaxFailures {
		t.Errorf("Remaining() after success = %d, want %d", got, throttle.MaxFailures)
	}
}

// TestLogin_NoGuard verifies the client works with throttling disabled.
func TestLogin_NoGuard(t *testing.T) {
	var hits int
	srv := failingServer(&hits)
	defer srv.Close()

	c := New(srv.URL, nil)
	for i := 0; i < throttle.MaxFailures+2; i++ {
		if _, err := c.Login("ana@x.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	if hits != throttle.MaxFailures+2 {
		t.Errorf("server hits = %d, want %d", hits, throttle.MaxFailures+2)
	}
}
