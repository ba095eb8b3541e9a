package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/paylinq/askhr/internal/model"
)

// noRelevantSentinel is the phrase the document model returns when the
// document contains nothing relevant to the question.
const noRelevantSentinel = "NO_RELEVANT_DATA_FOUND"

// analyzeDocument is the document analysis stage: it answers the question
// purely from the attached document. It never raises past its boundary; any
// internal failure collapses to NoDocument so a document-path failure cannot
// abort the pipeline while the query path might still succeed.
func (p *Pipeline) analyzeDocument(ctx context.Context, req model.Request) model.DocumentFinding {
	log := zap.L().With(zap.String("stage", "document"), zap.String("file", req.FilePath))

	if req.FilePath == "" {
		return model.NoDocument()
	}

	text, err := p.extractor.ExtractText(ctx, req.FilePath)
	if err != nil {
		log.Warn("document: extraction failed", zap.Error(err))
		return model.NoDocument()
	}
	if strings.TrimSpace(text) == "" {
		log.Info("document: extracted text is empty")
		return model.NoDocument()
	}

	resp, err := p.complete(ctx, p.cfg.Anthropic.DocumentModel,
		fmt.Sprintf(documentPrompt, text, req.Question))
	if err != nil {
		log.Warn("document: model call failed", zap.Error(err))
		return model.NoDocument()
	}

	answer := strings.TrimSpace(stripEmphasis(resp))
	if strings.EqualFold(answer, noRelevantSentinel) {
		log.Info("document: nothing relevant to the question")
		return model.NoRelevant()
	}
	if answer == "" {
		return model.NoDocument()
	}

	return model.Finding(answer)
}
