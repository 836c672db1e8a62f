package htmlfeed

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"

	"github.com/voetbalpool/voetbalpool/internal/platform/cache"
	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
	"github.com/voetbalpool/voetbalpool/internal/platform/resilience"
)

const defaultUserAgent = "voetbalpool/1.0 (+pool standings bot)"

var errFeedTransient = crerr.New("html feed transient failure")

type ClientConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Cache          *cache.Store
}

// Client fetches and parses one document per URL: follow redirects, retry
// transient failures, then reduce the body to classified tables.
type Client struct {
	http           *resty.Client
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	cache          *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	if cfg.MaxRetries > 0 {
		httpClient.
			SetRetryCount(cfg.MaxRetries).
			SetRetryWaitTime(500 * time.Millisecond).
			AddRetryCondition(func(res *resty.Response, err error) bool {
				return err != nil || res.StatusCode() >= http.StatusInternalServerError
			})
	}

	return &Client{
		http:           httpClient,
		logger:         logger,
		breaker:        cfg.CircuitBreaker.NewBreaker(),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		cache:          cfg.Cache,
	}
}

// Fetch retrieves url and returns the parsed document. A non-200 status
// after redirects is an error; the caller decides whether a failed source
// is fatal (it never is, per source).
func (c *Client) Fetch(ctx context.Context, url string) (*Document, error) {
	if url == "" {
		return nil, crerr.New("fetch: url is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return nil, crerr.Wrapf(err, "fetch %s", url)
		}
	}

	body, err := c.loadBody(ctx, url)
	if c.circuitEnabled {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}

	return ParseDocument(url, body)
}

func (c *Client) loadBody(ctx context.Context, url string) ([]byte, error) {
	fetch := func() ([]byte, error) {
		started := time.Now()
		res, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return nil, crerr.WithSecondaryError(crerr.Wrapf(errFeedTransient, "get %s", url), err)
		}
		if res.StatusCode() != http.StatusOK {
			return nil, crerr.Wrapf(errFeedTransient, "get %s: unexpected status %d", url, res.StatusCode())
		}

		c.logger.DebugContext(ctx, "document fetched",
			"url", url,
			"bytes", len(res.Body()),
			"elapsed", time.Since(started),
		)
		return res.Body(), nil
	}

	if c.cache != nil {
		return c.cache.GetOrLoad(ctx, url, fetch)
	}
	return fetch()
}
