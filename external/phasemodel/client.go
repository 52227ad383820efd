package phasemodel

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/scoutlab/squadscope/internal/domain/player"
	"github.com/scoutlab/squadscope/internal/platform/resilience"
)

var errModelTransient = crerr.New("phase model transient failure")

// Prediction is the model service's answer for one feature vector.
type Prediction struct {
	Phase      player.Phase
	Confidence float64
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Retries        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the external career-phase classification service. All
// failures surface as errors; callers decide whether to degrade to the
// age-derived phase.
type Client struct {
	client         *http.Client
	baseURL        string
	retries        int
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Phase      string  `json:"phase"`
	Confidence float64 `json:"confidence"`
}

// Classify sends the engineered feature vector and returns the predicted
// career phase. Unknown labels from the model are rejected.
func (c *Client) Classify(ctx context.Context, features player.ModelFeatures) (Prediction, error) {
	if c.baseURL == "" {
		return Prediction{}, crerr.New("phase model base url is not configured")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "phase model circuit breaker rejected request", "state", c.breaker.State())
			return Prediction{}, fmt.Errorf("phase model is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(predictRequest{Features: features.Vector()})
	if err != nil {
		return Prediction{}, crerr.Wrap(err, "marshal phase model request")
	}

	predictURL := c.baseURL + "/predict"
	c.logPreview(ctx, predictURL, body)

	var lastErr error
	attempts := c.retries + 1
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		prediction, callErr := c.callOnce(ctx, predictURL, body)
		if callErr == nil {
			c.recordCircuitResult(nil)
			return prediction, nil
		}

		lastErr = callErr
		if !stderrors.Is(callErr, errModelTransient) {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	c.recordCircuitResult(lastErr)

	return Prediction{}, lastErr
}

func (c *Client) callOnce(ctx context.Context, predictURL string, body []byte) (Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, predictURL, strings.NewReader(string(body)))
	if err != nil {
		return Prediction{}, crerr.Wrap(err, "create phase model request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: call phase model url=%s: %v", errModelTransient, predictURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode/100 != 2 {
		if isRetryableStatus(resp.StatusCode) {
			return Prediction{}, fmt.Errorf(
				"%w: call phase model status=%d url=%s body=%s",
				errModelTransient, resp.StatusCode, predictURL, strings.TrimSpace(string(raw)),
			)
		}
		return Prediction{}, fmt.Errorf(
			"call phase model status=%d url=%s body=%s",
			resp.StatusCode, predictURL, strings.TrimSpace(string(raw)),
		)
	}

	var parsed predictResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		return Prediction{}, crerr.Wrap(err, "decode phase model response")
	}

	phase, ok := player.ParsePhase(parsed.Phase)
	if !ok {
		return Prediction{}, crerr.Newf("phase model returned unknown phase %q", parsed.Phase)
	}

	return Prediction{Phase: phase, Confidence: parsed.Confidence}, nil
}

func (c *Client) logPreview(ctx context.Context, predictURL string, body []byte) {
	bodyText := truncateForLog(string(body), 2048)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("phasemodel.predict_url", predictURL),
			attribute.String("phasemodel.request_body", bodyText),
		)
	}
	c.logger.DebugContext(ctx, "phase model predict request", "url", predictURL, "curl_preview", buildCurlPreview(predictURL, bodyText))
}

func buildCurlPreview(predictURL, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(predictURL))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errModelTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
