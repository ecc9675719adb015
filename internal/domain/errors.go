package domain

import "errors"

var (
	// ErrNoSubmissionURL is returned when no URL in the question text contains "submit".
	ErrNoSubmissionURL = errors.New("no submission url found in question text")
	// ErrUnrecognizedQuiz is returned when the question matches no known quiz pattern.
	ErrUnrecognizedQuiz = errors.New("quiz type not recognized")
	// ErrTooFewPages is returned when the PDF does not reach the page the table lives on.
	ErrTooFewPages = errors.New("pdf has fewer pages than required")
	// ErrNoTable is returned when the target PDF page contains no table.
	ErrNoTable = errors.New("no table found on pdf page")
	// ErrColumnNotFound is returned when the table header lacks the summed column.
	ErrColumnNotFound = errors.New("column not found in table header")
)
