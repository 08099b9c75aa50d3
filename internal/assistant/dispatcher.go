// Package assistant answers chat questions and uploaded documents, either
// from the fixed FAQ table or through the text-generation service.
package assistant

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Skufu/nidhaan-assistant/internal/history"
	"github.com/Skufu/nidhaan-assistant/internal/llm"
	"github.com/Skufu/nidhaan-assistant/internal/metrics"
	"github.com/Skufu/nidhaan-assistant/pkg/logging"
)

const (
	sourceGenerated        = "generated"
	sourceGenerationFailed = "generation_failed"
)

// Dispatcher resolves a question against the FAQ rules and falls back to
// the generator with the medical-assistant persona.
type Dispatcher struct {
	gen     llm.Generator
	rules   []Rule
	logger  *logging.Logger
	metrics *metrics.AssistantMetrics
}

func NewDispatcher(gen llm.Generator, logger *logging.Logger, m *metrics.AssistantMetrics) *Dispatcher {
	if gen == nil {
		panic("assistant: generator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		gen:     gen,
		rules:   ruleDB,
		logger:  logger,
		metrics: m,
	}
}

// Normalize trims and lowercases a question for phrase matching.
func Normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// Match returns the first rule whose phrases occur in the question.
func (d *Dispatcher) Match(question string) (Rule, bool) {
	normalized := Normalize(question)
	for _, rule := range d.rules {
		if rule.Matches(normalized) {
			return rule, true
		}
	}
	return Rule{}, false
}

// Answer returns an HTML reply. Generation failures become an apology
// message rather than an error.
func (d *Dispatcher) Answer(ctx context.Context, question string, prior []history.Turn) string {
	if rule, ok := d.Match(question); ok {
		d.metrics.ObserveAnswer(rule.ID)
		d.logger.Debug("faq rule matched", "rule", rule.ID)
		return rule.Reply()
	}

	instruction := withContext(medicalAssistantPrompt, renderContext(chatContextHeader, prior))
	answer, err := d.gen.Generate(ctx, instruction, llm.Text(question))
	if err != nil {
		d.metrics.ObserveAnswer(sourceGenerationFailed)
		d.logger.Error("generation failed", "error", err)
		return apology(err)
	}

	d.metrics.ObserveAnswer(sourceGenerated)
	return answer
}

func apology(err error) string {
	return fmt.Sprintf("<p>I apologize, but I'm experiencing technical difficulties. Please try again later or contact Nidhaan support for assistance. Error: %s</p>",
		html.EscapeString(err.Error()))
}
