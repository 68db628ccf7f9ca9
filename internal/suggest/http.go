package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arete/coaching-app/internal/domain"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 15 * time.Second

// httpService talks JSON to the suggestion endpoint.
type httpService struct {
	endpoint string
	client   *http.Client
}

// NewHTTPService returns a Service posting to the configured endpoint.
func NewHTTPService(endpoint string, timeout time.Duration) Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &httpService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type workoutRequest struct {
	Profile domain.UserProfile `json:"profile"`
	Sport   string             `json:"sport"`
}

type summaryRequest struct {
	Weights []float64 `json:"weights"`
	Goal    string    `json:"goal"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

func (s *httpService) SuggestWorkout(ctx context.Context, profile domain.UserProfile, sport string) (*WorkoutSuggestion, error) {
	var out WorkoutSuggestion
	if err := s.post(ctx, "/v1/workout-suggestions", workoutRequest{Profile: profile, Sport: sport}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *httpService) SummarizeProgress(ctx context.Context, weights []float64, goal string) (string, error) {
	var out summaryResponse
	if err := s.post(ctx, "/v1/progress-summaries", summaryRequest{Weights: weights, Goal: goal}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

func (s *httpService) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("suggestion request failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
