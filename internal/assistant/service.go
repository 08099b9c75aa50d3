package assistant

import (
	"context"
	"strings"

	"github.com/Skufu/nidhaan-assistant/internal/history"
	"github.com/Skufu/nidhaan-assistant/internal/metrics"
	"github.com/Skufu/nidhaan-assistant/pkg/logging"
)

// HistoryStore is the chat log the service reads context from and appends to.
type HistoryStore interface {
	Append(ctx context.Context, question, response string) error
	Recent(ctx context.Context) ([]history.Turn, error)
	Clear(ctx context.Context) error
}

// Service runs one request: load context, answer, record the turn.
// Reads and appends are not transactional across concurrent requests.
type Service struct {
	history    HistoryStore
	dispatcher *Dispatcher
	documents  *DocumentAnalyzer
	logger     *logging.Logger
	metrics    *metrics.AssistantMetrics
}

func NewService(store HistoryStore, dispatcher *Dispatcher, documents *DocumentAnalyzer, logger *logging.Logger, m *metrics.AssistantMetrics) *Service {
	if store == nil {
		panic("assistant: history store required")
	}
	if dispatcher == nil || documents == nil {
		panic("assistant: dispatcher and document analyzer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		history:    store,
		dispatcher: dispatcher,
		documents:  documents,
		logger:     logger,
		metrics:    m,
	}
}

// Ask answers a text question and records it.
func (s *Service) Ask(ctx context.Context, question string) string {
	prior := s.recent(ctx)
	answer := s.dispatcher.Answer(ctx, question, prior)
	s.record(ctx, question, answer)
	return answer
}

// AnalyzeUpload answers an uploaded document and records it as "[FILE: name] question".
func (s *Service) AnalyzeUpload(ctx context.Context, up Upload) string {
	up.Question = strings.TrimSpace(up.Question)
	prior := s.recent(ctx)
	answer := s.documents.Analyze(ctx, up, prior)
	s.record(ctx, UploadQuestion(up.Filename, up.Question), answer)
	return answer
}

// ClearHistory removes every stored turn.
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		s.logger.Error("clear chat history failed", "error", err)
		return err
	}
	s.logger.Info("chat history cleared")
	return nil
}

// UploadQuestion is the question text stored for an upload.
func UploadQuestion(filename, question string) string {
	stored := "[FILE: " + filename + "]"
	if question != "" {
		stored += " " + question
	}
	return stored
}

func (s *Service) recent(ctx context.Context) []history.Turn {
	turns, err := s.history.Recent(ctx)
	if err != nil {
		s.logger.Warn("load chat history failed", "error", err)
		return nil
	}
	return turns
}

func (s *Service) record(ctx context.Context, question, answer string) {
	if err := s.history.Append(ctx, question, answer); err != nil {
		s.metrics.ObserveHistoryWriteFailure()
		s.logger.Error("append chat turn failed", "error", err)
	}
}
