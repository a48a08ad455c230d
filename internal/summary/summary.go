// Package summary reduces a finished session's answer records into the
// final scorecard and the downloadable plain-text report.
package summary

import (
	"fmt"
	"math"
	"strings"

	"mock-interview-service/internal/domain"
)

// Summarize aggregates all records of one session. The caller guarantees at
// least one record exists; an empty list returns ErrNoResults instead of
// dividing by zero.
func Summarize(role string, results []domain.AnswerRecord) (domain.SessionSummary, error) {
	if len(results) == 0 {
		return domain.SessionSummary{}, domain.ErrNoResults
	}

	var technical, clarity, problemSolving, confidence, overall float64
	best := 0
	breakdown := make([]domain.BreakdownItem, 0, len(results))
	for _, r := range results {
		technical += r.Evaluation.Technical
		clarity += r.Evaluation.Clarity
		problemSolving += r.Evaluation.ProblemSolving
		confidence += r.Evaluation.Confidence
		overall += float64(r.Evaluation.Overall)
		if r.Evaluation.Overall > best {
			best = r.Evaluation.Overall
		}
		breakdown = append(breakdown, domain.BreakdownItem{
			QuestionText: r.Question.Text,
			Overall:      r.Evaluation.Overall,
			Technical:    r.Evaluation.Technical,
		})
	}

	n := float64(len(results))
	avgOverall := roundMean(overall, n)
	return domain.SessionSummary{
		Role:              role,
		Questions:         len(results),
		AvgTechnical:      roundMean(technical, n),
		AvgClarity:        roundMean(clarity, n),
		AvgProblemSolving: roundMean(problemSolving, n),
		AvgConfidence:     roundMean(confidence, n),
		AvgOverall:        avgOverall,
		Grade:             Grade(avgOverall),
		Message:           message(avgOverall),
		BestOverall:       best,
		Breakdown:         breakdown,
	}, nil
}

// Grade maps the overall average onto the letter scale.
func Grade(overall int) string {
	switch {
	case overall >= 90:
		return "A+"
	case overall >= 80:
		return "A"
	case overall >= 70:
		return "B"
	default:
		return "C"
	}
}

func message(overall int) string {
	if overall > 70 {
		return "Excellent work! You are ready."
	}
	return "Keep practicing."
}

// Report renders the on-demand plain-text export: role, overall score and
// each question/answer/score triple in session order.
func Report(sum domain.SessionSummary, results []domain.AnswerRecord) string {
	var b strings.Builder
	b.WriteString("MOCK INTERVIEW REPORT\n")
	fmt.Fprintf(&b, "Role: %s\n", sum.Role)
	fmt.Fprintf(&b, "Score: %d/100\n\n", sum.AvgOverall)
	for i, r := range results {
		fmt.Fprintf(&b, "Q%d: %s\nAns: %s\nScore: %d\n\n", i+1, r.Question.Text, r.AnswerText, r.Evaluation.Overall)
	}
	return b.String()
}

func roundMean(sum, n float64) int {
	return int(math.Round(sum / n))
}
