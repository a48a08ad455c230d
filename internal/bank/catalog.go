package bank

import "mock-interview-service/internal/domain"

// Reserved role keys in the catalog.
const (
	// DefaultRole is served when the requested role has no dedicated bank.
	DefaultRole = "default"
	// BehavioralRole keys the shared behavioral pool drawn for every session.
	BehavioralRole = "behavioral"
)

// DefaultCatalog returns the built-in question banks, keyed by role. It is
// the seed content for the postgres store and the fallback when no store is
// configured.
func DefaultCatalog() map[string]domain.Bank {
	return map[string]domain.Bank{
		"Frontend Developer": {
			Role: "Frontend Developer",
			Questions: []domain.Question{
				{Text: "Differences between CSS Grid and Flexbox?", Keywords: []string{"grid", "flexbox", "axis", "layout"}, Difficulty: domain.DifficultyEasy, Category: domain.CategoryTechnical},
				{Text: "Explain React's Virtual DOM.", Keywords: []string{"virtual dom", "diffing", "reconciliation"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
				{Text: "How to handle state in large apps?", Keywords: []string{"redux", "context", "state"}, Difficulty: domain.DifficultyHard, Category: domain.CategoryTechnical},
				{Text: "What is CORS?", Keywords: []string{"cross-origin", "headers", "security"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
			},
		},
		"Backend Developer": {
			Role: "Backend Developer",
			Questions: []domain.Question{
				{Text: "REST vs GraphQL?", Keywords: []string{"rest", "graphql", "endpoint", "fetch"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
				{Text: "Explain ACID properties.", Keywords: []string{"atomicity", "consistency", "isolation", "durability"}, Difficulty: domain.DifficultyHard, Category: domain.CategoryTechnical},
				{Text: "How to scale a database?", Keywords: []string{"sharding", "replication", "indexing"}, Difficulty: domain.DifficultyHard, Category: domain.CategoryTechnical},
				{Text: "What is a JWT?", Keywords: []string{"token", "auth", "stateless"}, Difficulty: domain.DifficultyEasy, Category: domain.CategoryTechnical},
			},
		},
		"Full Stack Developer": {
			Role: "Full Stack Developer",
			Questions: []domain.Question{
				{Text: "SSR vs CSR?", Keywords: []string{"server-side", "client-side", "seo"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
				{Text: "How does HTTPS work?", Keywords: []string{"ssl", "tls", "encryption", "handshake"}, Difficulty: domain.DifficultyHard, Category: domain.CategoryTechnical},
				{Text: "Explain Microservices.", Keywords: []string{"decoupled", "independently deployable", "services"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
				{Text: "CI/CD Pipeline steps?", Keywords: []string{"build", "test", "deploy", "automation"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
			},
		},
		DefaultRole: {
			Role: DefaultRole,
			Questions: []domain.Question{
				{Text: "Tell me about yourself.", Keywords: []string{"experience", "skills", "background"}, Difficulty: domain.DifficultyEasy, Category: domain.CategoryTechnical},
				{Text: "Start describing your last project.", Keywords: []string{"project", "role", "tech stack"}, Difficulty: domain.DifficultyEasy, Category: domain.CategoryTechnical},
				{Text: "Greatest technical challenge?", Keywords: []string{"challenge", "solution", "outcome"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
				{Text: "Where do you see yourself in 5 years?", Keywords: []string{"growth", "goals", "career"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryTechnical},
			},
		},
		BehavioralRole: {
			Role: BehavioralRole,
			Questions: []domain.Question{
				{Text: "Tell me about a conflict you resolved.", Keywords: []string{"conflict", "resolution", "communication"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryBehavioral, STARMethod: true},
				{Text: "Describe a time you failed.", Keywords: []string{"failure", "learning", "growth"}, Difficulty: domain.DifficultyMedium, Category: domain.CategoryBehavioral, STARMethod: true},
				{Text: "How do you handle deadlines?", Keywords: []string{"priority", "time management", "stress"}, Difficulty: domain.DifficultyEasy, Category: domain.CategoryBehavioral, STARMethod: true},
			},
		},
	}
}
