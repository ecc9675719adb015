package app

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quiz-solver-service/internal/domain"
)

// Page is a handle on a rendered quiz page.
type Page interface {
	// Evaluate runs a JavaScript expression in the page and returns its string result.
	Evaluate(expression string) (string, error)
	// Content returns the full rendered HTML of the page.
	Content() (string, error)
}

// PageFetcher drives a headless browser to load a URL. The returned release
// function tears the browser down and must be called exactly once.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (Page, func(), error)
}

// TableExtractor locates a table on a given page of a PDF document.
// It returns domain.ErrTooFewPages when the document is shorter than
// pageNumber and domain.ErrNoTable when the page holds no table.
type TableExtractor interface {
	TableOnPage(data []byte, pageNumber int) (domain.Table, error)
}

// Pipeline runs one quiz end to end: fetch, extract, solve, submit.
type Pipeline struct {
	fetcher         PageFetcher
	tables          TableExtractor
	events          *RunBroker
	client          *http.Client
	downloadTimeout time.Duration
	submitTimeout   time.Duration
	log             zerolog.Logger
}

// PipelineOptions tune the pipeline's outbound HTTP behaviour. Zero values
// fall back to a plain client and 30s timeouts.
type PipelineOptions struct {
	HTTPClient      *http.Client
	DownloadTimeout time.Duration
	SubmitTimeout   time.Duration
}

func NewPipeline(fetcher PageFetcher, tables TableExtractor, events *RunBroker, log zerolog.Logger, opts PipelineOptions) *Pipeline {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	downloadTimeout := opts.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = 30 * time.Second
	}
	submitTimeout := opts.SubmitTimeout
	if submitTimeout <= 0 {
		submitTimeout = 30 * time.Second
	}
	return &Pipeline{
		fetcher:         fetcher,
		tables:          tables,
		events:          events,
		client:          client,
		downloadTimeout: downloadTimeout,
		submitTimeout:   submitTimeout,
		log:             log,
	}
}

// Run executes the pipeline for one quiz. Every failure is logged and ends
// the run; nothing propagates to the caller. When the answer is accepted and
// the response names a follow-up quiz, Run returns the request for the next
// hop and true.
func (p *Pipeline) Run(ctx context.Context, req domain.QuizRequest) (domain.QuizRequest, bool) {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Str("quiz_url", req.URL).Logger()
	log.Info().Msg("starting quiz run")
	p.publish(runID, req.URL, "fetch", "loading quiz page")

	page, release, err := p.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		log.Error().Err(err).Msg("failed to navigate to quiz url")
		p.publish(runID, req.URL, "fetch", "navigation failed")
		return domain.QuizRequest{}, false
	}
	defer release()

	content, decoded, err := extractPayload(page)
	if err != nil {
		log.Error().Err(err).Msg("failed to read quiz page content")
		return domain.QuizRequest{}, false
	}
	if decoded {
		log.Info().Msg("decoded base64 payload from script tag")
	} else {
		log.Warn().Msg("no decodable payload found, falling back to full page content")
	}

	quiz, err := parseQuizPage(content)
	if err != nil {
		log.Error().Err(err).Msg("failed to extract quiz details")
		p.publish(runID, req.URL, "extract", "no submission endpoint found")
		return domain.QuizRequest{}, false
	}
	log.Info().Str("submission_url", quiz.SubmissionURL).Str("download_link", quiz.DownloadLink).Msg("extracted quiz details")

	p.publish(runID, req.URL, "solve", "computing answer")
	answer, err := p.solve(ctx, quiz)
	if err != nil {
		log.Error().Err(err).Msg("failed to solve quiz")
		p.publish(runID, req.URL, "solve", "unable to compute an answer")
		return domain.QuizRequest{}, false
	}
	log.Info().Float64("answer", answer).Msg("computed answer")

	p.publish(runID, req.URL, "submit", "submitting answer")
	result, err := p.submit(ctx, req, quiz.SubmissionURL, answer)
	if err != nil {
		log.Error().Err(err).Msg("failed to submit answer")
		p.publish(runID, req.URL, "submit", "submission failed")
		return domain.QuizRequest{}, false
	}

	if !result.Correct {
		reason := result.Reason
		if reason == "" {
			reason = "No reason provided."
		}
		log.Warn().Str("reason", reason).Msg("answer is incorrect")
		p.publish(runID, req.URL, "submit", "answer rejected: "+reason)
		return domain.QuizRequest{}, false
	}

	if result.URL == "" {
		log.Info().Msg("quiz series finished")
		p.publish(runID, req.URL, "done", "quiz series finished")
		return domain.QuizRequest{}, false
	}

	log.Info().Str("next_url", result.URL).Msg("answer accepted, chaining to next quiz")
	p.publish(runID, req.URL, "chain", "chaining to "+result.URL)
	return domain.QuizRequest{
		Email:  req.Email,
		Secret: req.Secret,
		URL:    result.URL,
	}, true
}

func (p *Pipeline) publish(runID, quizURL, stage, message string) {
	if p.events == nil {
		return
	}
	p.events.Publish(domain.RunEvent{
		RunID:   runID,
		QuizURL: quizURL,
		Stage:   stage,
		Message: message,
		At:      time.Now(),
	})
}
