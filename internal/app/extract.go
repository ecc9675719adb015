package app

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"quiz-solver-service/internal/domain"
)

// Quiz pages embed the obfuscated question as a backtick-fenced base64 string
// inside the script tag right after the #result element.
const resultScriptJS = `document.querySelector("#result + script").innerHTML`

const submitMarker = "submit"

var urlPattern = regexp.MustCompile(`https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+`)

// extractPayload pulls the encoded payload out of the page. The second
// return value reports which branch produced the content: true for a decoded
// payload, false for the verbatim page fallback. Only a page whose content
// cannot be read at all yields an error.
func extractPayload(page Page) (string, bool, error) {
	if raw, err := page.Evaluate(resultScriptJS); err == nil {
		if decoded, ok := decodeFencedBase64(raw); ok {
			return decoded, true, nil
		}
	}
	content, err := page.Content()
	if err != nil {
		return "", false, fmt.Errorf("read page content: %w", err)
	}
	return content, false, nil
}

// decodeFencedBase64 takes the second backtick-delimited segment of raw and
// decodes it as base64 UTF-8 text. Any malformation reports false.
func decodeFencedBase64(raw string) (string, bool) {
	parts := strings.Split(raw, "`")
	if len(parts) < 2 {
		return "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", false
	}
	if !utf8.Valid(decoded) {
		return "", false
	}
	return string(decoded), true
}

// parseQuizPage turns quiz page content into the question text, the first
// anchor's href, and the submission endpoint. A quiz with no discoverable
// submission endpoint cannot be answered, so that case is an error; a missing
// anchor is not.
func parseQuizPage(content string) (domain.QuizPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return domain.QuizPage{}, fmt.Errorf("parse quiz content: %w", err)
	}

	quiz := domain.QuizPage{QuestionText: normalizeText(doc.Text())}
	if href, ok := doc.Find("a").First().Attr("href"); ok {
		quiz.DownloadLink = href
	}

	for _, u := range urlPattern.FindAllString(quiz.QuestionText, -1) {
		if strings.Contains(u, submitMarker) {
			quiz.SubmissionURL = u
			break
		}
	}
	if quiz.SubmissionURL == "" {
		return domain.QuizPage{}, domain.ErrNoSubmissionURL
	}
	return quiz, nil
}

// normalizeText collapses all whitespace onto single spaces. Minified pages
// put everything on one enormous line, so no line-oriented scanning here.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
