// Package evaluate scores interview answers with a local heuristic. It is
// deliberately not a model call: every score is a pure function of the
// question and the answer text, so results are reproducible and the
// thresholds below are product policy, not tunables.
package evaluate

import (
	"fmt"
	"math"
	"strings"

	"mock-interview-service/internal/domain"
)

const (
	keywordPoints  = 2.5
	lengthBonus    = 1.0
	technicalFloor = 2.0 // zero-effort answers are not zero-scored
	technicalCeil  = 10.0
)

var fillerVocab = []string{"um", "uh", "like"}

var problemSolvingMarkers = []string{"because", "step"}

var confidenceMarkers = []string{"definitely", "confident"}

var suggestions = []string{"Use STAR method", "Be more concise", "Practice tone"}

// Evaluate scores an answer against a question. It never fails: empty and
// sentinel answers map to the floor scores.
func Evaluate(q domain.Question, answer string) domain.EvaluationResult {
	lower := strings.ToLower(answer)
	wordCount := len(strings.Fields(answer))

	technical := 0.0
	for _, kw := range q.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			technical += keywordPoints
		}
	}
	if wordCount > 20 {
		technical += lengthBonus
	}
	technical = math.Min(technicalCeil, math.Max(technicalFloor, technical))

	var clarity float64
	switch {
	case wordCount > 100:
		clarity = 9
	case wordCount > 50:
		clarity = 7
	case wordCount > 20:
		clarity = 5
	default:
		clarity = 3
	}

	problemSolving := 5.0
	if containsAny(lower, problemSolvingMarkers) {
		problemSolving = 8
	}

	confidence := 6.0
	if containsAny(lower, confidenceMarkers) {
		confidence = 9
	}

	return domain.EvaluationResult{
		Technical:       technical,
		Clarity:         clarity,
		ProblemSolving:  problemSolving,
		Confidence:      confidence,
		Overall:         int(math.Round((technical + clarity + problemSolving + confidence) * 2.5)),
		FillerWords:     fillerWords(lower),
		Feedback:        feedback(q, technical, clarity),
		Suggestions:     append([]string(nil), suggestions...),
		SuggestedAnswer: suggestedAnswer(q),
	}
}

// Engagement is the live 0-100 indicator shown while the candidate types.
// Cosmetic only; it never feeds the evaluation.
func Engagement(wordCount int) int {
	if wordCount < 0 {
		return 0
	}
	e := int(math.Round(float64(wordCount) * 1.5))
	if e > 100 {
		return 100
	}
	return e
}

// fillerWords intersects the answer's tokens with the filler vocabulary.
// Tokens are compared whole, so "likely" does not count as "like".
func fillerWords(lower string) []string {
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(lower) {
		tokens[strings.Trim(tok, ".,!?;:\"'()")] = struct{}{}
	}
	var found []string
	for _, f := range fillerVocab {
		if _, ok := tokens[f]; ok {
			found = append(found, f)
		}
	}
	return found
}

// feedback is rule-based and always non-empty.
func feedback(q domain.Question, technical, clarity float64) []string {
	var fb []string
	if technical < 5 {
		fb = append(fb, fmt.Sprintf("Missed keywords: %s", strings.Join(q.Keywords, ", ")))
	} else {
		fb = append(fb, "Good usage of technical terms.")
	}
	if clarity < 6 {
		fb = append(fb, "Try to elaborate more.")
	}
	return fb
}

func suggestedAnswer(q domain.Question) string {
	topic := "the core topic"
	if len(q.Keywords) > 0 {
		topic = q.Keywords[0]
	}
	return fmt.Sprintf("A strong answer would address %s directly with an example from your project.", topic)
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
