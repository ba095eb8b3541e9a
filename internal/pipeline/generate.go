package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/paylinq/askhr/internal/model"
	"github.com/paylinq/askhr/internal/schema"
	"github.com/paylinq/askhr/internal/sqltext"
	"github.com/paylinq/askhr/pkg/anthropic"
)

// generate is the query generation stage: one model call to produce a
// candidate statement, one database execution. No retries; the coordinator
// escalates failures to the validation stage as context.
func (p *Pipeline) generate(ctx context.Context, req model.Request) (*model.GeneratedQuery, model.StageOutcome) {
	log := zap.L().With(zap.String("stage", "generate"))

	resp, err := p.complete(ctx, p.cfg.Anthropic.GenerateModel, p.buildGeneratePrompt(req))
	if err != nil {
		log.Warn("generate: model call failed", zap.Error(err))
		return nil, model.ExecError("query generation failed: " + err.Error())
	}

	stmt, err := sqltext.Extract(resp)
	if err != nil {
		log.Warn("generate: extraction failed", zap.Error(err))
		return nil, model.ExecError("no usable query in model output: " + err.Error())
	}
	stmt = schema.NormalizeIdentifiers(stmt, p.schema)

	query := &model.GeneratedQuery{Statement: stmt, Stage: model.StageGeneration}
	log.Debug("generate: extracted statement", zap.String("statement", stmt))

	rows, err := p.database.Execute(ctx, stmt)
	if err != nil {
		log.Warn("generate: execution failed", zap.Error(err))
		return query, model.ExecError("query execution failed: " + err.Error())
	}

	return query, model.Success(rows)
}

// complete performs a single-turn model call and returns the text response.
func (p *Pipeline) complete(ctx context.Context, modelID, prompt string) (string, error) {
	temp := 0.0
	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       modelID,
		MaxTokens:   p.cfg.Anthropic.MaxTokens,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
