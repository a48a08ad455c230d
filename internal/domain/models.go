package domain

// Difficulty labels a question for the candidate-facing badge.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Category splits the bank into technical and behavioral pools.
type Category string

const (
	CategoryTechnical  Category = "Technical"
	CategoryBehavioral Category = "Behavioral"
)

// Mode is how the candidate answers: typed text, spoken, or both.
type Mode string

const (
	ModeText   Mode = "text"
	ModeVoice  Mode = "voice"
	ModeHybrid Mode = "hybrid"
)

// Sentinel answer texts recorded when a question ends without
// user-authored content.
const (
	SentinelNoAnswer = "[No Answer]"
	SentinelSkipped  = "[Skipped]"
)

// Question is one immutable catalog entry.
type Question struct {
	Text       string     `json:"text"`
	Keywords   []string   `json:"keywords"`
	Difficulty Difficulty `json:"difficulty"`
	Category   Category   `json:"category"`
	STARMethod bool       `json:"starMethod,omitempty"`
}

// Bank holds the question set for one target role.
type Bank struct {
	Role      string     `json:"role"`
	Questions []Question `json:"questions"`
}

// InterviewScript is the fixed ordered question list for one session.
type InterviewScript []Question

// EvaluationResult is the scored outcome for a single answer. The four
// dimensions are 0-10, Overall is the 0-100 composite.
type EvaluationResult struct {
	Technical       float64  `json:"technical"`
	Clarity         float64  `json:"clarity"`
	ProblemSolving  float64  `json:"problemSolving"`
	Confidence      float64  `json:"confidence"`
	Overall         int      `json:"overall"`
	FillerWords     []string `json:"fillerWords"`
	Feedback        []string `json:"feedback"`
	Suggestions     []string `json:"suggestions"`
	SuggestedAnswer string   `json:"suggestedAnswer"`
}

// AnswerRecord ties a question to the answer given and its evaluation.
// One is appended per completed question and never edited.
type AnswerRecord struct {
	Question   Question         `json:"question"`
	AnswerText string           `json:"answerText"`
	Evaluation EvaluationResult `json:"evaluation"`
}

// BreakdownItem is one per-question row of the final summary, kept in
// original question order.
type BreakdownItem struct {
	QuestionText string  `json:"questionText"`
	Overall      int     `json:"overall"`
	Technical    float64 `json:"technical"`
}

// SessionSummary aggregates all answer records of a finished session.
type SessionSummary struct {
	Role              string          `json:"role"`
	Questions         int             `json:"questions"`
	AvgTechnical      int             `json:"avgTechnical"`
	AvgClarity        int             `json:"avgClarity"`
	AvgProblemSolving int             `json:"avgProblemSolving"`
	AvgConfidence     int             `json:"avgConfidence"`
	AvgOverall        int             `json:"avgOverall"`
	Grade             string          `json:"grade"`
	Message           string          `json:"message"`
	BestOverall       int             `json:"bestOverall"`
	Breakdown         []BreakdownItem `json:"breakdown"`
}
