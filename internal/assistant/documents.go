package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skufu/nidhaan-assistant/internal/history"
	"github.com/Skufu/nidhaan-assistant/internal/llm"
	"github.com/Skufu/nidhaan-assistant/internal/metrics"
	"github.com/Skufu/nidhaan-assistant/pkg/logging"
)

// Upload outcomes, used as metric labels.
const (
	OutcomeUndetected  = "undetected"
	OutcomeUnsupported = "unsupported"
	OutcomeEmpty       = "empty"
	OutcomeAnswered    = "answered"
	OutcomeFailed      = "failed"
)

const (
	summaryRequest  = "Please analyze this medical document and provide a summary."
	questionRequest = "User question about this uploaded file: %s\n\nPlease answer the user's question based on the uploaded document."
	docxQuestion    = "User uploaded file content: %s\n\nUser question: %s\n\nPlease answer the user's question based on the uploaded medical document."
)

// Upload is a file received from the chat widget with an optional question.
type Upload struct {
	Filename string
	Data     []byte
	Question string
}

// DocumentAnalyzer summarizes uploaded documents or answers a question about them.
type DocumentAnalyzer struct {
	gen     llm.Generator
	logger  *logging.Logger
	metrics *metrics.AssistantMetrics
}

func NewDocumentAnalyzer(gen llm.Generator, logger *logging.Logger, m *metrics.AssistantMetrics) *DocumentAnalyzer {
	if gen == nil {
		panic("assistant: generator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DocumentAnalyzer{gen: gen, logger: logger, metrics: m}
}

// Analyze validates the upload's media type and returns the reply text.
// Every failure is reported in the returned text.
func (a *DocumentAnalyzer) Analyze(ctx context.Context, up Upload, prior []history.Turn) string {
	answer, outcome := a.analyze(ctx, up, prior)
	a.metrics.ObserveUpload(outcome)
	return answer
}

func (a *DocumentAnalyzer) analyze(ctx context.Context, up Upload, prior []history.Turn) (string, string) {
	mediaType, ok := DetectMediaType(up.Filename, up.Data)
	if !ok {
		return "Unable to detect file type for: " + up.Filename, OutcomeUndetected
	}
	if !IsSupportedMediaType(mediaType) {
		return fmt.Sprintf("Unsupported file type: %s.\n\nSupported types: PDF, TXT, DOCX, JPG, PNG, WEBP", up.Filename), OutcomeUnsupported
	}
	if len(up.Data) == 0 {
		return "Upload failed: file is empty", OutcomeEmpty
	}

	question := strings.TrimSpace(up.Question)
	chatContext := renderContext(documentContextHeader, prior)

	var (
		instruction string
		failure     string
		parts       []llm.Part
	)
	if question == "" {
		instruction = withContext(documentSummaryPrompt, chatContext)
		failure = "Analysis failed"
	} else {
		instruction = withContext(documentQuestionPrompt, chatContext)
		failure = "Processing failed"
	}

	if mediaType == docxMediaType {
		text, err := extractDocxText(up.Data)
		if err != nil {
			a.logger.Warn("docx extraction failed", "filename", up.Filename, "error", err)
			return fmt.Sprintf("%s: %v", failure, err), OutcomeFailed
		}
		if strings.TrimSpace(text) == "" {
			return up.Filename + " contains no readable content.", OutcomeEmpty
		}
		if question == "" {
			parts = []llm.Part{llm.Text(text)}
		} else {
			parts = []llm.Part{llm.Text(fmt.Sprintf(docxQuestion, text, question))}
		}
	} else {
		request := summaryRequest
		if question != "" {
			request = fmt.Sprintf(questionRequest, question)
		}
		parts = []llm.Part{
			llm.Blob{MIMEType: mediaType, Data: up.Data},
			llm.Text(request),
		}
	}

	answer, err := a.gen.Generate(ctx, instruction, parts...)
	if err != nil {
		a.logger.Error("document generation failed", "filename", up.Filename, "media_type", mediaType, "error", err)
		return fmt.Sprintf("%s: %v", failure, err), OutcomeFailed
	}
	return answer, OutcomeAnswered
}
