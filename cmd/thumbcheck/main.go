package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"zhurnal/internal/config"
	"zhurnal/internal/journal"
	"zhurnal/internal/source"
)

var (
	registry = prometheus.NewRegistry()

	checkedThumbs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thumbcheck_thumbnails_total",
		Help: "Total number of probed thumbnails",
	}, []string{"status"})

	probeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "thumbcheck_probe_duration_seconds",
		Help:    "Time spent probing a single thumbnail",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	registry.MustRegister(checkedThumbs, probeDuration)
}

var log = logrus.New()

func main() {
	srcPath := flag.String("src", "", "Path to local journals.json (default: configured source URL)")
	threads := flag.Int("threads", 8, "Number of probe workers")
	timeout := flag.Duration("timeout", 10*time.Second, "Per-probe timeout")
	flag.Parse()

	cfg := config.Get()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})

	records, err := loadRecords(cfg, *srcPath)
	if err != nil {
		log.Fatalf("Failed to load journals: %v", err)
	}
	if len(records) == 0 {
		log.Info("No journals in document, nothing to probe.")
		return
	}

	links := journal.NewLinks(cfg.Ranking)
	client := &http.Client{Timeout: *timeout}
	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetDescription("probing thumbnails"),
		progressbar.OptionShowCount(),
	)

	jobs := make(chan journal.Record)
	var wg sync.WaitGroup
	var broken int32
	for i := 0; i < *threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				if !probe(client, links.ThumbURL(r.Code)) {
					atomic.AddInt32(&broken, 1)
					log.WithFields(logrus.Fields{"name": r.Name, "code": r.Code}).Warn("thumbnail missing")
				}
				_ = bar.Add(1)
			}
		}()
	}

	for _, r := range records {
		jobs <- r
	}
	close(jobs)
	wg.Wait()
	fmt.Println()

	if cfg.Metrics.PushgatewayURL != "" {
		_ = push.New(cfg.Metrics.PushgatewayURL, "thumbcheck").Gatherer(registry).Push()
	}

	total := len(records)
	log.Infof("Done: %d probed, %d missing", total, broken)
	if broken > 0 {
		os.Exit(1)
	}
}

func loadRecords(cfg *config.Config, srcPath string) ([]journal.Record, error) {
	var data []byte
	var err error
	if srcPath != "" {
		data, err = os.ReadFile(srcPath)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Source.Timeout())
		defer cancel()
		lg := logrus.New()
		lg.SetLevel(logrus.WarnLevel)
		data, err = source.New(cfg.Source, lg).Fetch(ctx)
	}
	if err != nil {
		return nil, err
	}
	return journal.Parse(data)
}

// probe считает миниатюру живой, если апстрим отдал 2xx и непустое тело
func probe(client *http.Client, url string) bool {
	start := time.Now()
	defer func() { probeDuration.Observe(time.Since(start).Seconds()) }()

	resp, err := client.Get(url)
	if err != nil {
		checkedThumbs.WithLabelValues("error").Inc()
		return false
	}
	defer resp.Body.Close()

	n, _ := io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 || n == 0 {
		checkedThumbs.WithLabelValues("missing").Inc()
		return false
	}
	checkedThumbs.WithLabelValues("ok").Inc()
	return true
}
