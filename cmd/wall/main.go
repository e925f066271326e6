package main

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"zhurnal/internal/config"
	"zhurnal/internal/journal"
	"zhurnal/internal/middleware"
	"zhurnal/internal/source"
	"zhurnal/internal/wall"
	"zhurnal/internal/wall/delivery"
)

func main() {
	cfg := config.Get()

	log := logrus.StandardLogger()
	if cfg.Wall.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	links := journal.NewLinks(cfg.Ranking)
	srv := &delivery.Server{
		Log:      log,
		Source:   source.New(cfg.Source, log),
		Renderer: wall.NewRenderer(links),
		Links:    links,
	}

	if cfg.Metrics.Port > 0 {
		go func() {
			mmux := http.NewServeMux()
			mmux.Handle("/metrics", srv.Metrics())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.Infof("📊 Metrics exporter on %s", addr)
			if err := http.ListenAndServe(addr, mmux); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	handler := middleware.CORS(middleware.TraceID(middleware.RequestLogger(log)(srv.Mux())))

	addr := cfg.Wall.Address()
	log.Infof("🧱 Journal Wall started on http://%s (source: %s)", addr, cfg.Source.URL)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("failed to start web server: %v", err)
	}
}
