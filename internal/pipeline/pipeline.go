// Package pipeline orchestrates the multi-stage inference flow: query
// generation, query validation, document analysis, and response synthesis.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/paylinq/askhr/internal/config"
	"github.com/paylinq/askhr/internal/db"
	"github.com/paylinq/askhr/internal/examples"
	"github.com/paylinq/askhr/internal/extract"
	"github.com/paylinq/askhr/internal/guard"
	"github.com/paylinq/askhr/internal/model"
	"github.com/paylinq/askhr/internal/schema"
	"github.com/paylinq/askhr/pkg/anthropic"
)

// Pipeline coordinates one request through the stages. All collaborators are
// injected; nothing here holds mutable cross-request state.
type Pipeline struct {
	cfg       *config.Config
	database  db.DB
	client    anthropic.Client
	guard     *guard.Guard
	extractor extract.Extractor
	schema    *schema.Schema
	examples  []examples.Example
}

// New creates a Pipeline with all dependencies. The schema and example set
// are materialized once at startup and treated as read-only.
func New(
	cfg *config.Config,
	database db.DB,
	client anthropic.Client,
	grd *guard.Guard,
	extractor extract.Extractor,
	sch *schema.Schema,
	exampleSet []examples.Example,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		database:  database,
		client:    client,
		guard:     grd,
		extractor: extractor,
		schema:    sch,
		examples:  exampleSet,
	}
}

// Run answers one request. It always returns an answer string: stage
// failures are carried forward as typed outcomes and framed by the synthesis
// stage, and anything escaping a stage is converted to a fallback answer at
// this boundary.
func (p *Pipeline) Run(ctx context.Context, req model.Request) (answer string) {
	log := zap.L().With(
		zap.String("user", req.UserName),
		zap.String("tier", string(req.Tier)),
	)

	lang := Detect(req.Question)

	defer func() {
		if r := recover(); r != nil {
			log.Error("pipeline: recovered panic", zap.Any("panic", r))
			answer = fallbackMessage(lang)
		}
	}()

	if timeout := p.cfg.Pipeline.RequestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// Input state machine: Invalid and DocOnly are terminal without invoking
	// any stage.
	switch {
	case req.Question == "" && req.FilePath == "":
		return invalidInputMessage(lang)
	case req.Question == "":
		return questionRequiredMessage(lang)
	}

	// Access gate: restricted callers only. Elevated tiers bypass the guard
	// entirely; that policy lives here, not in the guard.
	if req.Tier == model.TierRestricted {
		if p.guard.Evaluate(ctx, req.UserName, req.Question) == guard.Blocked {
			log.Info("pipeline: question blocked by access guard")
			return p.respond(ctx, req, lang, model.Blocked(), model.NoDocument(), true)
		}
	}

	var (
		genQuery   *model.GeneratedQuery
		genOutcome model.StageOutcome
		finding    = model.NoDocument()
	)

	// Stage 1 and Stage 4 are independent; run them concurrently when a
	// document is attached and join both before validation. Neither branch
	// returns an error into the group so a slow document extraction is never
	// abandoned and a fast finding never short-circuits the query path.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := p.runStage("generate", func() {
			genQuery, genOutcome = p.generate(gCtx, req)
		}); err != nil {
			genOutcome = model.ExecError(err.Error())
		}
		return nil
	})
	if req.FilePath != "" {
		g.Go(func() error {
			if err := p.runStage("document", func() {
				finding = p.analyzeDocument(gCtx, req)
			}); err != nil {
				finding = model.NoDocument()
			}
			return nil
		})
	}
	_ = g.Wait()

	var valOutcome model.StageOutcome
	if err := p.runStage("validate", func() {
		_, valOutcome = p.validate(ctx, req, genQuery, genOutcome)
	}); err != nil {
		valOutcome = model.ExecError(err.Error())
	}

	return p.respond(ctx, req, lang, valOutcome, finding, false)
}

// runStage executes fn, logging duration, and converts a panic into an error
// so a stage can never terminate the pipeline.
func (p *Pipeline) runStage(name string, fn func()) (err error) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Milliseconds()
		if r := recover(); r != nil {
			err = eris.Errorf("pipeline: stage %s: %v", name, r)
			zap.L().Error("pipeline: stage panicked",
				zap.String("stage", name),
				zap.Int64("duration_ms", duration),
				zap.Any("panic", r),
			)
			return
		}
		zap.L().Info("pipeline: stage complete",
			zap.String("stage", name),
			zap.Int64("duration_ms", duration),
		)
	}()
	fn()
	return nil
}
