package assistant

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/Skufu/nidhaan-assistant/internal/history"
	"github.com/Skufu/nidhaan-assistant/internal/llm"
	"github.com/Skufu/nidhaan-assistant/pkg/logging"
	"github.com/stretchr/testify/require"
)

type generateCall struct {
	instruction string
	parts       []llm.Part
}

// stubGenerator returns a scripted reply and records every call.
type stubGenerator struct {
	reply string
	err   error
	calls []generateCall
}

func (s *stubGenerator) Generate(_ context.Context, instruction string, parts ...llm.Part) (string, error) {
	s.calls = append(s.calls, generateCall{instruction: instruction, parts: parts})
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// memoryStore is an in-memory HistoryStore.
type memoryStore struct {
	turns     []history.Turn
	recentErr error
	appendErr error
	clearErr  error
}

func (m *memoryStore) Append(_ context.Context, question, response string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.turns = append(m.turns, history.Turn{Question: question, Response: response})
	return nil
}

func (m *memoryStore) Recent(_ context.Context) ([]history.Turn, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	start := len(m.turns) - history.ContextWindow
	if start < 0 {
		start = 0
	}
	out := make([]history.Turn, len(m.turns[start:]))
	copy(out, m.turns[start:])
	return out, nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.turns = nil
	return nil
}

func newTestDispatcher(gen llm.Generator) *Dispatcher {
	return NewDispatcher(gen, logging.Discard(), nil)
}

func newTestAnalyzer(gen llm.Generator) *DocumentAnalyzer {
	return NewDocumentAnalyzer(gen, logging.Discard(), nil)
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body +
		`</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
