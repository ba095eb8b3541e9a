// Package guard decides whether a restricted caller's question is permitted.
// The decision fails closed: any doubt or internal failure blocks.
package guard

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/paylinq/askhr/pkg/anthropic"
)

// Decision is the guard's verdict.
type Decision string

const (
	Allowed Decision = "allowed"
	Blocked Decision = "blocked"
)

const guardPrompt = `You are an access control classifier for an HR question-answering system.
The caller is the employee named "%s". Decide whether the question below is permitted.

Rules, first match wins:
1. If the question references a person's name different from the caller's own name, answer BLOCKED.
2. If the question references aggregate or organization-wide sensitive figures (total payroll, everyone's salaries, company-wide compensation), answer BLOCKED.
3. If the question references only the caller's own data or non-sensitive general information (policies, holidays, procedures), answer ALLOWED.
4. If no person's name is detected at all, answer ALLOWED.

Question: %s

Answer with exactly one word: ALLOWED or BLOCKED.`

// Guard evaluates questions for restricted callers using a model classifier.
type Guard struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates a Guard backed by the given model client.
func New(client anthropic.Client, model string) *Guard {
	return &Guard{client: client, model: model, maxTokens: 16}
}

// Evaluate classifies the question for the named caller. Any failure to
// obtain a confident verdict returns Blocked.
func (g *Guard) Evaluate(ctx context.Context, identityName, question string) Decision {
	temp := 0.0
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(guardPrompt, identityName, question)},
		},
	})
	if err != nil {
		zap.L().Warn("guard: classifier unavailable, failing closed",
			zap.String("user", identityName),
			zap.Error(err),
		)
		return Blocked
	}

	verdict := strings.ToUpper(strings.TrimSpace(resp.Text()))
	switch verdict {
	case "ALLOWED":
		return Allowed
	case "BLOCKED":
		return Blocked
	default:
		zap.L().Warn("guard: unparseable verdict, failing closed",
			zap.String("user", identityName),
			zap.String("verdict", verdict),
		)
		return Blocked
	}
}
