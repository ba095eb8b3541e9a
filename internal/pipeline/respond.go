package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/paylinq/askhr/internal/model"
)

// respond is the response synthesis stage: it merges the refined query
// outcome and the document finding into one natural-language answer in the
// question's language. When the access guard blocked the question the fixed
// refusal is returned without ever invoking the model, so no blocked data can
// leak through a paraphrase.
func (p *Pipeline) respond(ctx context.Context, req model.Request, lang language.Tag, queryOutcome model.StageOutcome, finding model.DocumentFinding, accessBlocked bool) string {
	log := zap.L().With(zap.String("stage", "respond"))

	if accessBlocked {
		return refusalMessage(lang)
	}

	queryBlock := noQueryData
	if queryOutcome.HasRows() {
		queryBlock = renderRows(queryOutcome.Rows)
	}
	docBlock := noDocumentData
	if finding.Kind == model.FindingText {
		docBlock = finding.Text
	}

	prompt := fmt.Sprintf(respondPrompt,
		queryBlock,
		docBlock,
		req.Question,
		languageName(lang),
		noQueryData,
		noDocumentData,
	)

	resp, err := p.complete(ctx, p.cfg.Anthropic.RespondModel, prompt)
	if err != nil {
		log.Warn("respond: model call failed", zap.Error(err))
		return fallbackMessage(lang)
	}

	answer := strings.TrimSpace(stripEmphasis(resp))
	if answer == "" {
		log.Warn("respond: model returned empty answer")
		return fallbackMessage(lang)
	}

	return answer
}

// stripEmphasis removes residual markdown emphasis markers from model output.
func stripEmphasis(s string) string {
	replacer := strings.NewReplacer(
		"**", "",
		"__", "",
		"*", "",
	)
	return replacer.Replace(s)
}
