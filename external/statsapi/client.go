package statsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/voetbalpool/voetbalpool/internal/domain/scoring"
	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
	"github.com/voetbalpool/voetbalpool/internal/platform/resilience"
)

const defaultBaseURL = "https://api.voetbalstats.example/v1"

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errStatsTransient = crerr.New("stats api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the goal/cup stats API. It is the only component that
// needs the run credential; construction fails without one so a
// misconfigured run aborts before any fetch.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, crerr.New("stats api token is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          token,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        cfg.CircuitBreaker.NewBreaker(),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}, nil
}

// PlayerGoals returns every goal recorded for the referenced player this
// season. Eligibility filtering is not applied here; that is scoring's
// concern.
func (c *Client) PlayerGoals(ctx context.Context, playerRef string) ([]scoring.GoalEvent, error) {
	playerRef = strings.TrimSpace(playerRef)
	if playerRef == "" {
		return nil, crerr.New("player ref is required")
	}

	path := fmt.Sprintf("/players/%s/goals", url.PathEscape(playerRef))
	var envelope goalsEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, err
	}
	return mapGoalEvents(envelope.Data), nil
}

// TeamCupProgress returns the furthest cup stage reached per category for
// the referenced team. Teams absent from every knockout phase yield an
// empty slice.
func (c *Client) TeamCupProgress(ctx context.Context, teamRef string) ([]scoring.CupProgress, error) {
	teamRef = strings.TrimSpace(teamRef)
	if teamRef == "" {
		return nil, crerr.New("team ref is required")
	}

	path := fmt.Sprintf("/teams/%s/cups", url.PathEscape(teamRef))
	var envelope cupsEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, err
	}
	return mapCupProgress(envelope.Data), nil
}

func (c *Client) doJSON(ctx context.Context, path string, out any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return crerr.Wrapf(err, "stats api %s", path)
		}
	}

	body, err := c.doJSONOnce(ctx, path)
	for attempt := 0; attempt < c.maxRetries && crerr.Is(err, errStatsTransient); attempt++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 250 * time.Millisecond):
			body, err = c.doJSONOnce(ctx, path)
		}
	}

	if c.circuitEnabled {
		if err != nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return crerr.Wrapf(err, "decode stats api %s", path)
	}
	return nil
}

func (c *Client) doJSONOnce(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL + path + "?api_token=" + url.QueryEscape(c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, crerr.Wrapf(err, "build stats api request %s", path)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.WithSecondaryError(crerr.Wrapf(errStatsTransient, "stats api %s", path), err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, crerr.Wrapf(errStatsTransient, "read stats api %s: %v", path, err)
	}

	switch {
	case res.StatusCode == http.StatusOK:
		c.logger.DebugContext(ctx, "stats api response",
			"path", path,
			"elapsed", time.Since(started),
			"bytes", len(body),
		)
		return body, nil
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError:
		return nil, crerr.Wrapf(errStatsTransient, "stats api %s: status %d", path, res.StatusCode)
	default:
		return nil, crerr.Newf("stats api %s: status %d body %s", path, res.StatusCode, redactToken(truncate(string(body), 256)))
	}
}

func redactToken(s string) string {
	return apiTokenParamRegex.ReplaceAllString(s, "api_token=***")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
