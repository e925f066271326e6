package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"zhurnal/internal/journal"
	"zhurnal/internal/logger"
	"zhurnal/internal/metrics"
	"zhurnal/internal/source"
	"zhurnal/internal/wall"
)

type Server struct {
	Log      *logrus.Logger
	Source   *source.Client
	Renderer *wall.Renderer
	Links    journal.Links
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	count(r, "/health", "200")
}

func (s *Server) Metrics() http.Handler { return promhttp.Handler() }

// load выполняет одну попытку: fetch + parse. Ошибка терминальна,
// ретраев внутри запроса нет.
func (s *Server) load(ctx context.Context) ([]journal.Record, error) {
	defer logger.Track(ctx, "Wall: document load")()

	data, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return journal.Parse(data)
}

// GET / — страница-стена. ?q= фильтрует по имени/коду.
func (s *Server) Wall(w http.ResponseWriter, r *http.Request) {
	// Шаблон "/" в ServeMux ловит все несопоставленные пути;
	// апстрим дёргаем только для корня
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		count(r, "unmatched", "404")
		return
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := s.load(ctx)
	if err != nil {
		s.Log.WithError(err).Error("wall.load.failed")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		_ = s.Renderer.RenderError(w, loadErrorMessage(err))
		count(r, "/", "502")
		return
	}

	records = journal.Filter(records, r.URL.Query().Get("q"))
	metrics.JournalsRendered.Observe(float64(len(records)))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Renderer.Render(w, records); err != nil {
		s.Log.WithError(err).Error("wall.render.failed")
	}
	count(r, "/", "200")
	metrics.HttpRequestDuration.WithLabelValues("/").Observe(time.Since(start).Seconds())
}

// GET /api/journals — тот же список в JSON, с ошибками в envelope
func (s *Server) APIJournals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	records, err := s.load(ctx)
	if err != nil {
		s.Log.WithError(err).Error("api.load.failed")
		code, kind := classify(err)
		source.WriteError(w, code, kind, loadErrorMessage(err), nil)
		count(r, "/api/journals", fmt.Sprint(code))
		return
	}

	records = journal.Filter(records, r.URL.Query().Get("q"))

	out, err := ShapeJournals(records, s.Links)
	if err != nil {
		source.WriteError(w, http.StatusInternalServerError, "shape_error", "failed to shape journals", err.Error())
		count(r, "/api/journals", "500")
		return
	}
	writeRawJSON(w, http.StatusOK, out)
	count(r, "/api/journals", "200")
	metrics.HttpRequestDuration.WithLabelValues("/api/journals").Observe(time.Since(start).Seconds())
}

// Mux собирает все маршруты сервиса
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.Wall)
	mux.HandleFunc("/api/journals", s.APIJournals)
	mux.HandleFunc("/health", s.Health)
	return mux
}

// loadErrorMessage различает транспортные ошибки и ошибки формата
func loadErrorMessage(err error) string {
	var se *source.StatusError
	switch {
	case errors.As(err, &se):
		return fmt.Sprintf("The journals source responded with HTTP %d.", se.Code)
	case errors.Is(err, source.ErrUnreachable):
		return "Could not reach the journals source. The document must be served over HTTP."
	case errors.Is(err, journal.ErrFormat):
		return "The journals document is malformed: expected a 'journals' list."
	default:
		return "Failed to load journals: " + err.Error()
	}
}

func classify(err error) (status int, kind string) {
	var se *source.StatusError
	switch {
	case errors.As(err, &se):
		return http.StatusBadGateway, "upstream_status"
	case errors.Is(err, source.ErrUnreachable):
		return http.StatusBadGateway, "source_unreachable"
	case errors.Is(err, journal.ErrFormat):
		return http.StatusBadGateway, "format_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func count(r *http.Request, path, status string) {
	metrics.HttpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
}
