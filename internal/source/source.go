package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"zhurnal/internal/config"
	"zhurnal/internal/metrics"
)

// Client ходит за документом журналов на апстрим
type Client struct {
	cfg     config.SourceConfig
	client  *http.Client
	logger  *logrus.Logger
	limiter *rate.Limiter
	once    sync.Once
	baseErr error
}

func New(cfg config.SourceConfig, logger *logrus.Logger) *Client {
	return &Client{
		cfg:     cfg,
		logger:  logger,
		client:  newHTTPClient(cfg),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
	}
}

func newHTTPClient(cfg config.SourceConfig) *http.Client {
	t := &http.Transport{
		MaxIdleConns:       100,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
		ForceAttemptHTTP2:  true,
	}
	return &http.Client{Transport: t, Timeout: cfg.Timeout()}
}

func (c *Client) validateURL() error {
	c.once.Do(func() {
		u, err := url.Parse(c.cfg.URL)
		if err != nil {
			c.baseErr = fmt.Errorf("%w: bad source url: %v", ErrUnreachable, err)
			return
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			// file:// и прочее не годится: документ должен отдаваться по HTTP
			c.baseErr = fmt.Errorf("%w: journals document must be served over HTTP, got scheme %q", ErrUnreachable, u.Scheme)
		}
	})
	return c.baseErr
}

// Fetch загружает документ журналов. Ошибки сети заворачиваются в
// ErrUnreachable, не-2xx статус в *StatusError; тело отдаётся как есть.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	if err := c.validateURL(); err != nil {
		metrics.SourceFetchesTotal.WithLabelValues("unreachable").Inc()
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.SourceFetchesTotal.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		metrics.SourceFetchesTotal.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", c.cfg.URL).Error("source.fetch.failed")
		metrics.SourceFetchesTotal.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		metrics.SourceFetchesTotal.WithLabelValues("http_status").Inc()
		return nil, &StatusError{Code: res.StatusCode}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.SourceFetchesTotal.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if c.logger.IsLevelEnabled(logrus.DebugLevel) {
		c.logger.WithFields(logrus.Fields{
			"url":   c.cfg.URL,
			"bytes": len(data),
		}).Debug("source.fetch.ok")
	}
	metrics.SourceFetchesTotal.WithLabelValues("ok").Inc()
	return data, nil
}
