package evaluate

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"mock-interview-service/internal/domain"
)

func restQuestion() domain.Question {
	return domain.Question{
		Text:       "REST vs GraphQL?",
		Keywords:   []string{"rest", "graphql", "endpoint", "fetch"},
		Difficulty: domain.DifficultyMedium,
		Category:   domain.CategoryTechnical,
	}
}

func TestEvaluateIsPure(t *testing.T) {
	q := restQuestion()
	answer := "REST definitely uses endpoints because each resource has one, um, and GraphQL lets clients fetch exactly what they need"

	first := Evaluate(q, answer)
	second := Evaluate(q, answer)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestTechnicalFloor(t *testing.T) {
	res := Evaluate(restQuestion(), "I do not know")
	if res.Technical != 2 {
		t.Fatalf("expected technical floor 2, got %v", res.Technical)
	}
}

func TestTechnicalFloorForSentinel(t *testing.T) {
	for _, answer := range []string{domain.SentinelNoAnswer, domain.SentinelSkipped, ""} {
		res := Evaluate(restQuestion(), answer)
		if res.Technical != 2 {
			t.Fatalf("answer %q: expected technical 2, got %v", answer, res.Technical)
		}
		if len(res.Feedback) == 0 {
			t.Fatalf("answer %q: expected non-empty feedback", answer)
		}
	}
}

func TestTechnicalCeiling(t *testing.T) {
	// All four keywords matched plus the length bonus would be 11 unclamped.
	answer := "rest graphql endpoint fetch " + strings.Repeat("word ", 30)
	res := Evaluate(restQuestion(), answer)
	if res.Technical != 10 {
		t.Fatalf("expected technical clamped to 10, got %v", res.Technical)
	}
}

func TestRestVsGraphQLScenario(t *testing.T) {
	answer := "REST uses endpoints and GraphQL uses a single endpoint with flexible fetch queries"
	res := Evaluate(restQuestion(), answer)

	// 4 keyword matches at 2.5 each, no length bonus at 13 words.
	if res.Technical != 10 {
		t.Fatalf("expected technical 10, got %v", res.Technical)
	}
	if res.Clarity != 3 {
		t.Fatalf("expected clarity 3 for a short answer, got %v", res.Clarity)
	}
}

func TestClarityBands(t *testing.T) {
	tests := []struct {
		words int
		want  float64
	}{
		{5, 3},
		{20, 3},
		{21, 5},
		{50, 5},
		{51, 7},
		{100, 7},
		{101, 9},
	}
	for _, tc := range tests {
		answer := strings.TrimSpace(strings.Repeat("word ", tc.words))
		res := Evaluate(restQuestion(), answer)
		if res.Clarity != tc.want {
			t.Fatalf("%d words: expected clarity %v, got %v", tc.words, tc.want, res.Clarity)
		}
	}
}

func TestProblemSolvingAndConfidenceMarkers(t *testing.T) {
	q := restQuestion()

	res := Evaluate(q, "plain answer with nothing special")
	if res.ProblemSolving != 5 || res.Confidence != 6 {
		t.Fatalf("expected baseline 5/6, got %v/%v", res.ProblemSolving, res.Confidence)
	}

	res = Evaluate(q, "It works because each step is definitely isolated")
	if res.ProblemSolving != 8 {
		t.Fatalf("expected problem-solving 8, got %v", res.ProblemSolving)
	}
	if res.Confidence != 9 {
		t.Fatalf("expected confidence 9, got %v", res.Confidence)
	}
}

func TestOverallComposite(t *testing.T) {
	answers := []string{
		"",
		"short answer",
		"REST uses endpoints and GraphQL uses a single endpoint with flexible fetch queries",
		"I am definitely confident because " + strings.Repeat("detail ", 60),
	}
	q := restQuestion()
	for _, answer := range answers {
		res := Evaluate(q, answer)
		want := int(math.Round((res.Technical + res.Clarity + res.ProblemSolving + res.Confidence) * 2.5))
		if res.Overall != want {
			t.Fatalf("answer %q: expected overall %d, got %d", answer, want, res.Overall)
		}
	}
}

func TestFillerWordsAreTokenMatched(t *testing.T) {
	res := Evaluate(restQuestion(), "Um, I would likely use REST, uh, for most cases")
	if !reflect.DeepEqual(res.FillerWords, []string{"um", "uh"}) {
		t.Fatalf("expected [um uh], got %v", res.FillerWords)
	}

	// "likely" must not count as the filler "like".
	res = Evaluate(restQuestion(), "most likely the unlikeliest option")
	if len(res.FillerWords) != 0 {
		t.Fatalf("expected no fillers, got %v", res.FillerWords)
	}
}

func TestFeedbackRules(t *testing.T) {
	q := restQuestion()

	res := Evaluate(q, "no relevant terms here at all")
	if got := res.Feedback[0]; !strings.HasPrefix(got, "Missed keywords:") {
		t.Fatalf("expected missed-keywords notice, got %q", got)
	}
	found := false
	for _, fb := range res.Feedback {
		if fb == "Try to elaborate more." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected elaborate notice for low clarity, got %v", res.Feedback)
	}

	res = Evaluate(q, "rest graphql endpoint answer "+strings.Repeat("explained ", 60))
	if res.Feedback[0] != "Good usage of technical terms." {
		t.Fatalf("expected affirming notice, got %q", res.Feedback[0])
	}
	if len(res.Feedback) != 1 {
		t.Fatalf("expected only the affirming notice, got %v", res.Feedback)
	}
}

func TestSuggestedAnswerUsesPrimaryKeyword(t *testing.T) {
	res := Evaluate(restQuestion(), "anything")
	if !strings.Contains(res.SuggestedAnswer, "rest") {
		t.Fatalf("expected suggested answer to reference the primary keyword, got %q", res.SuggestedAnswer)
	}
}

func TestEngagement(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{10, 15},
		{33, 50},
		{67, 100}, // 100.5 rounds past the cap
		{200, 100},
	}
	for _, tc := range tests {
		if got := Engagement(tc.words); got != tc.want {
			t.Fatalf("%d words: expected engagement %d, got %d", tc.words, tc.want, got)
		}
	}
}
