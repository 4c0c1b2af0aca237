package captcha

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	operandMin = 1
	operandMax = 5

	// additionBias is the probability of emitting an addition question.
	// Addition is favoured so users never face a confusing result.
	additionBias = 0.7
)

// Challenge is a human-solvable arithmetic question and its answer.
type Challenge struct {
	Question string `json:"question"`
	Answer   int    `json:"answer"`
}

// Generator produces arithmetic challenges.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from the current time.
func NewGenerator() *Generator {
	return NewGeneratorWithSeed(time.Now().UnixNano())
}

// NewGeneratorWithSeed creates a generator with a fixed seed for deterministic tests.
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // G404: anti-bot gate, not a cryptographic challenge
}

// Generate returns a new challenge. Operands are drawn from a small range and
// subtraction always yields a positive result; equal operands are bumped so
// the answer is never zero.
func (g *Generator) Generate() Challenge {
	g.mu.Lock()
	defer g.mu.Unlock()

	a := g.rng.Intn(operandMax-operandMin+1) + operandMin
	b := g.rng.Intn(operandMax-operandMin+1) + operandMin

	if g.rng.Float64() < additionBias {
		return Challenge{
			Question: fmt.Sprintf("%d + %d = ?", a, b),
			Answer:   a + b,
		}
	}

	larger, smaller := a, b
	if b > a {
		larger, smaller = b, a
	}
	if larger == smaller {
		// Avoid 5 - 5 = 0, make it 6 - 5 = 1
		larger++
	}

	return Challenge{
		Question: fmt.Sprintf("%d - %d = ?", larger, smaller),
		Answer:   larger - smaller,
	}
}

// VerifyAnswer reports whether a submitted answer matches the expected one.
// Both values are trimmed; direct string equality is accepted, and when both
// parse as base-10 integers numeric equality is accepted too. This tolerates
// type coercion differences between client and transport ("05" vs "5").
func VerifyAnswer(submitted, expected string) bool {
	submitted = strings.TrimSpace(submitted)
	expected = strings.TrimSpace(expected)

	if submitted == "" || expected == "" {
		return false
	}

	if submitted == expected {
		return true
	}

	submittedNum, err := strconv.Atoi(submitted)
	if err != nil {
		return false
	}
	expectedNum, err := strconv.Atoi(expected)
	if err != nil {
		return false
	}

	return submittedNum == expectedNum
}
