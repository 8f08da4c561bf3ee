package model

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/abhisek/tbscreen/internal/features"
)

// DefaultRemoteTimeout bounds a single remote prediction.
const DefaultRemoteTimeout = 5 * time.Second

// PredictRequest is the body posted to <baseURL>/predict.
type PredictRequest struct {
	Features []float64 `json:"features"`
}

// PredictResponse is the body returned by the inference endpoint.
type PredictResponse struct {
	Class *int   `json:"class"`
	Model string `json:"model,omitempty"`
}

// Remote classifies by calling an HTTP inference endpoint. It never retries.
type Remote struct {
	httpClient *resty.Client
	baseURL    string
	logger     *zap.Logger
}

// NewRemote returns a Remote for baseURL. A zero timeout uses
// DefaultRemoteTimeout; a nil logger discards output.
func NewRemote(baseURL string, timeout time.Duration, logger *zap.Logger) *Remote {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Remote{
		httpClient: client,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Predict posts v to the endpoint. Transport failures, non-2xx statuses and
// responses without a class are *UnavailableError.
func (r *Remote) Predict(ctx context.Context, v features.Vector) (Class, error) {
	if err := features.CheckDimension(v); err != nil {
		return 0, err
	}

	var response PredictResponse
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetBody(PredictRequest{Features: v}).
		SetResult(&response).
		Post("/predict")

	if err != nil {
		r.logger.Error("Remote classifier call failed", zap.String("endpoint", r.baseURL), zap.Error(err))
		return 0, &UnavailableError{Source: r.baseURL, Err: err}
	}

	if resp.IsError() {
		r.logger.Error("Remote classifier returned error",
			zap.String("endpoint", r.baseURL),
			zap.Int("status_code", resp.StatusCode()),
		)
		return 0, &UnavailableError{Source: r.baseURL, Err: fmt.Errorf("status %d", resp.StatusCode())}
	}

	if response.Class == nil {
		return 0, &UnavailableError{Source: r.baseURL, Err: fmt.Errorf("response has no class")}
	}

	r.logger.Debug("Remote classifier answered",
		zap.String("endpoint", r.baseURL),
		zap.Int("class", *response.Class),
	)
	return Class(*response.Class), nil
}

// Ping checks that the endpoint answers GET /health with a 2xx status.
func (r *Remote) Ping(ctx context.Context) error {
	resp, err := r.httpClient.R().SetContext(ctx).Get("/health")
	if err != nil {
		return &UnavailableError{Source: r.baseURL, Err: err}
	}
	if resp.IsError() {
		return &UnavailableError{Source: r.baseURL, Err: fmt.Errorf("status %d", resp.StatusCode())}
	}
	return nil
}

// ID returns "remote:<baseURL>".
func (r *Remote) ID() string { return "remote:" + r.baseURL }
