package bank

import (
	"math"
	"math/rand"
	"time"

	"mock-interview-service/internal/domain"
)

// Selector builds interview scripts from a role bank and the behavioral
// pool. The random source is injected so tests can pin composition and
// order with a fixed seed.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector returns a Selector backed by rnd, or a time-seeded source
// when rnd is nil.
func NewSelector(rnd *rand.Rand) *Selector {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rnd: rnd}
}

// TechnicalCount is the technical share of a script: ceil(70%) of the
// requested total. The remainder comes from the behavioral pool.
func TechnicalCount(total int) int {
	return int(math.Ceil(float64(total) * 0.7))
}

// Select draws a shuffled script of count questions: ceil(0.7*count)
// technical from roleQuestions and the rest from behavioral. A pool smaller
// than its quota is served whole rather than failing.
func (s *Selector) Select(roleQuestions, behavioral []domain.Question, count int) domain.InterviewScript {
	if count < 0 {
		count = 0
	}
	technical := s.sample(roleQuestions, TechnicalCount(count))
	rest := s.sample(behavioral, count-len(technical))

	script := make(domain.InterviewScript, 0, len(technical)+len(rest))
	script = append(script, technical...)
	script = append(script, rest...)
	s.rnd.Shuffle(len(script), func(i, j int) {
		script[i], script[j] = script[j], script[i]
	})
	return script
}

// sample draws n questions without replacement via an unbiased shuffle of a
// copy of the pool. The original pool order is never touched.
func (s *Selector) sample(pool []domain.Question, n int) []domain.Question {
	if n <= 0 {
		return nil
	}
	drawn := make([]domain.Question, len(pool))
	copy(drawn, pool)
	s.rnd.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	if n > len(drawn) {
		n = len(drawn)
	}
	return drawn[:n]
}
