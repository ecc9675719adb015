package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"quiz-solver-service/internal/domain"
)

type submissionPayload struct {
	Email  string  `json:"email"`
	Secret string  `json:"secret"`
	URL    string  `json:"url"`
	Answer float64 `json:"answer"`
}

// submit posts the answer to the submission endpoint and parses the verdict.
// Exactly one submission happens per solved run; there is no retry.
func (p *Pipeline) submit(ctx context.Context, req domain.QuizRequest, endpoint string, answer float64) (domain.SubmissionResult, error) {
	body, err := json.Marshal(submissionPayload{
		Email:  req.Email,
		Secret: req.Secret,
		URL:    req.URL,
		Answer: answer,
	})
	if err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("encode submission: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.submitTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("build submission request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.SubmissionResult{}, fmt.Errorf("post submission: unexpected status %d", resp.StatusCode)
	}

	var result domain.SubmissionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.SubmissionResult{}, fmt.Errorf("decode submission response: %w", err)
	}
	return result, nil
}
