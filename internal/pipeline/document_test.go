package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/paylinq/askhr/internal/model"
)

func TestAnalyzeDocumentFinding(t *testing.T) {
	client := newStubModel()
	client.on(documentModel, "The notice period is **60 days**.")
	p := newTestPipeline(client, &fakeDB{}, &fakeExtractor{text: "Notice period: 60 days."})

	finding := p.analyzeDocument(context.Background(), model.Request{
		Question: "What is the notice period?",
		FilePath: "contract.pdf",
	})

	assert.Equal(t, model.FindingText, finding.Kind)
	assert.Equal(t, "The notice period is 60 days.", finding.Text)
}

func TestAnalyzeDocumentNothingRelevant(t *testing.T) {
	client := newStubModel()
	client.on(documentModel, "no_relevant_data_found")
	p := newTestPipeline(client, &fakeDB{}, &fakeExtractor{text: "Unrelated memo."})

	finding := p.analyzeDocument(context.Background(), model.Request{
		Question: "What is the notice period?",
		FilePath: "memo.txt",
	})

	assert.Equal(t, model.FindingNoRelevant, finding.Kind)
}

func TestAnalyzeDocumentDegradesToNoDocument(t *testing.T) {
	tests := []struct {
		name      string
		extractor *fakeExtractor
		setup     func(*stubModel)
		req       model.Request
	}{
		{
			name:      "no file attached",
			extractor: &fakeExtractor{},
			req:       model.Request{Question: "q"},
		},
		{
			name:      "extraction fails",
			extractor: &fakeExtractor{err: eris.New("corrupt file")},
			req:       model.Request{Question: "q", FilePath: "broken.pdf"},
		},
		{
			name:      "extracted text is blank",
			extractor: &fakeExtractor{text: "   \n\t"},
			req:       model.Request{Question: "q", FilePath: "blank.pdf"},
		},
		{
			name:      "model call fails",
			extractor: &fakeExtractor{text: "some text"},
			setup:     func(s *stubModel) { s.onErr(documentModel, eris.New("api down")) },
			req:       model.Request{Question: "q", FilePath: "doc.pdf"},
		},
		{
			name:      "model returns nothing",
			extractor: &fakeExtractor{text: "some text"},
			setup:     func(s *stubModel) { s.on(documentModel, "  ") },
			req:       model.Request{Question: "q", FilePath: "doc.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newStubModel()
			if tt.setup != nil {
				tt.setup(client)
			}
			p := newTestPipeline(client, &fakeDB{}, tt.extractor)

			finding := p.analyzeDocument(context.Background(), tt.req)

			assert.Equal(t, model.FindingNoDocument, finding.Kind)
		})
	}
}
