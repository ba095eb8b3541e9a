package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/paylinq/askhr/internal/model"
	"github.com/paylinq/askhr/internal/schema"
	"github.com/paylinq/askhr/internal/sqltext"
)

// validate is the query validation stage: it re-examines the question, the
// prior statement, and the observed outcome, and may replace the query. An
// empty model response means no valid query is possible and maps directly to
// NoResults without a re-execution attempt. A failure here never rolls back
// to generation; the coordinator carries it forward to synthesis.
func (p *Pipeline) validate(ctx context.Context, req model.Request, prior *model.GeneratedQuery, priorOutcome model.StageOutcome) (*model.GeneratedQuery, model.StageOutcome) {
	log := zap.L().With(zap.String("stage", "validate"))

	resp, err := p.complete(ctx, p.cfg.Anthropic.ValidateModel, p.buildValidatePrompt(req, prior, priorOutcome))
	if err != nil {
		log.Warn("validate: model call failed", zap.Error(err))
		return nil, model.ExecError("query validation failed: " + err.Error())
	}

	if strings.TrimSpace(resp) == "" {
		log.Info("validate: model declared no valid query possible")
		return nil, model.NoResults()
	}

	stmt, err := sqltext.Extract(resp)
	if err != nil {
		log.Warn("validate: extraction failed", zap.Error(err))
		return nil, model.ExecError("no usable query in validation output: " + err.Error())
	}
	stmt = schema.NormalizeIdentifiers(stmt, p.schema)

	query := &model.GeneratedQuery{Statement: stmt, Stage: model.StageValidation}
	log.Debug("validate: refined statement", zap.String("statement", stmt))

	rows, err := p.database.Execute(ctx, stmt)
	if err != nil {
		log.Warn("validate: execution failed", zap.Error(err))
		return query, model.ExecError("refined query execution failed: " + err.Error())
	}

	return query, model.Success(rows)
}
