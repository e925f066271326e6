package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"zhurnal/internal/config"
)

func testClient(url string) *Client {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(config.SourceConfig{
		URL:        url,
		TimeoutSec: 2,
		RatePerSec: 100,
		Burst:      10,
	}, log)
}

func TestFetchOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"journals":[]}`))
	}))
	defer srv.Close()

	data, err := testClient(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"journals":[]}` {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestFetchHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Fetch(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", se.Code)
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close() // порт закрыт, соединение должно падать

	_, err := testClient(addr).Fetch(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestFetchHonorsRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"journals":[]}`))
	}))
	defer srv.Close()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	// 2 rps, burst 1: второй запрос обязан подождать ~500ms
	c := New(config.SourceConfig{
		URL:        srv.URL,
		TimeoutSec: 2,
		RatePerSec: 2,
		Burst:      1,
	}, log)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(context.Background()); err != nil {
			t.Fatalf("fetch %d: unexpected error: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 400*time.Millisecond {
		t.Errorf("second fetch was not rate limited: elapsed %v", elapsed)
	}
}

func TestFetchRejectsNonHTTPScheme(t *testing.T) {
	_, err := testClient("file:///tmp/journals.json").Fetch(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable for file scheme, got %v", err)
	}
}
