package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/paylinq/askhr/internal/config"
	"github.com/paylinq/askhr/internal/examples"
	"github.com/paylinq/askhr/internal/guard"
	"github.com/paylinq/askhr/internal/model"
	"github.com/paylinq/askhr/internal/schema"
	"github.com/paylinq/askhr/pkg/anthropic"
)

// Stage routing in tests is by model ID: each stage is configured with its
// own ID so a stub can tell which stage is calling.
const (
	guardModel    = "guard-m"
	generateModel = "gen-m"
	validateModel = "val-m"
	respondModel  = "resp-m"
	documentModel = "doc-m"
)

// stubModel routes CreateMessage by model ID to per-stage handlers and
// records every request it sees.
type stubModel struct {
	mu       sync.Mutex
	handlers map[string]func(req anthropic.MessageRequest) (string, error)
	delays   map[string]time.Duration
	calls    []anthropic.MessageRequest
}

func newStubModel() *stubModel {
	return &stubModel{
		handlers: make(map[string]func(req anthropic.MessageRequest) (string, error)),
		delays:   make(map[string]time.Duration),
	}
}

func (s *stubModel) on(modelID, reply string) {
	s.handlers[modelID] = func(anthropic.MessageRequest) (string, error) {
		return reply, nil
	}
}

func (s *stubModel) onErr(modelID string, err error) {
	s.handlers[modelID] = func(anthropic.MessageRequest) (string, error) {
		return "", err
	}
}

func (s *stubModel) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	handler := s.handlers[req.Model]
	delay := s.delays[req.Model]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, eris.Errorf("stub: no handler for model %s", req.Model)
	}
	text, err := handler(req)
	if err != nil {
		return nil, err
	}
	return &anthropic.MessageResponse{
		Model:   req.Model,
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}, nil
}

// callsTo returns the recorded requests sent to the given model ID.
func (s *stubModel) callsTo(modelID string) []anthropic.MessageRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []anthropic.MessageRequest
	for _, call := range s.calls {
		if call.Model == modelID {
			out = append(out, call)
		}
	}
	return out
}

// fakeDB answers Execute from a configurable function and records statements.
type fakeDB struct {
	mu         sync.Mutex
	execute    func(ctx context.Context, stmt string) (model.ResultSet, error)
	statements []string
}

func (f *fakeDB) Execute(ctx context.Context, stmt string) (model.ResultSet, error) {
	f.mu.Lock()
	f.statements = append(f.statements, stmt)
	f.mu.Unlock()
	if f.execute == nil {
		return nil, nil
	}
	return f.execute(ctx, stmt)
}

func (f *fakeDB) Schema(context.Context) (*schema.Schema, error) { return testSchema(), nil }
func (f *fakeDB) Ping(context.Context) error                     { return nil }
func (f *fakeDB) Close() error                                   { return nil }

func (f *fakeDB) executed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.statements...)
}

// fakeExtractor returns fixed text, optionally after a delay.
type fakeExtractor struct {
	text  string
	err   error
	delay time.Duration
}

func (f *fakeExtractor) ExtractText(ctx context.Context, _ string) (string, error) {
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}
	return f.text, f.err
}

func testSchema() *schema.Schema {
	return &schema.Schema{
		Tables: []schema.Table{
			{
				Name: "employees",
				Columns: []schema.Column{
					{Name: "full_name", Type: "text"},
					{Name: "department", Type: "text"},
					{Name: "salary", Type: "numeric"},
					{Name: "vacation_days", Type: "integer"},
				},
			},
			{
				Name: "policies",
				Columns: []schema.Column{
					{Name: "title", Type: "text"},
					{Name: "body", Type: "text"},
				},
			},
		},
	}
}

func testExamples() []examples.Example {
	return []examples.Example{
		{
			Question: "What is the salary of Ana Souza?",
			Query:    "SELECT salary FROM employees WHERE full_name = 'Ana Souza'",
		},
		{
			Question: "How many employees work in Engineering?",
			Query:    "SELECT COUNT(*) AS n FROM employees WHERE department = 'Engineering'",
		},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Anthropic: config.AnthropicConfig{
			GenerateModel: generateModel,
			ValidateModel: validateModel,
			RespondModel:  respondModel,
			DocumentModel: documentModel,
			GuardModel:    guardModel,
			MaxTokens:     256,
		},
		Pipeline: config.PipelineConfig{
			RequestTimeoutSecs: 5,
			MaxResultRows:      50,
		},
	}
}

func newTestPipeline(client anthropic.Client, database *fakeDB, extractor *fakeExtractor) *Pipeline {
	if extractor == nil {
		extractor = &fakeExtractor{}
	}
	cfg := testConfig()
	return New(cfg, database, client, guard.New(client, cfg.Anthropic.GuardModel), extractor, testSchema(), testExamples())
}

func fence(stmt string) string {
	return "```sql\n" + stmt + "\n```"
}
