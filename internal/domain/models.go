package domain

import "time"

// QuizRequest identifies one quiz attempt. A fresh instance is created for
// every hop in a chain; instances are never mutated.
type QuizRequest struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// QuizPage is what one page load boils down to: the question text, an
// optional downloadable resource, and the discovered submission endpoint.
type QuizPage struct {
	QuestionText  string
	DownloadLink  string
	SubmissionURL string
}

// Table is a structured extraction from a PDF page. The header holds the
// ordered column names; each row holds cell strings in column order.
type Table struct {
	Header []string
	Rows   [][]string
}

// SubmissionResult is the parsed response from a submission endpoint.
type SubmissionResult struct {
	Correct bool   `json:"correct"`
	Reason  string `json:"reason,omitempty"`
	URL     string `json:"url,omitempty"`
}

// RunEvent is a progress notification emitted by a pipeline run. Events are
// fanned out to live subscribers; they are not persisted.
type RunEvent struct {
	RunID   string    `json:"runId"`
	QuizURL string    `json:"quizUrl"`
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
