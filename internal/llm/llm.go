// Package llm is the boundary to the external text-generation service.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrGeneration wraps every failure of the generation service: transport,
	// quota, blocked prompts and empty candidates.
	ErrGeneration = errors.New("llm: generation failed")

	ErrMissingAPIKey = errors.New("llm: api key is required")
)

// Part is one piece of user content sent alongside the system instruction.
type Part interface {
	isPart()
}

// Text is a plain text part.
type Text string

// Blob is raw file content tagged with its media type.
type Blob struct {
	MIMEType string
	Data     []byte
}

func (Text) isPart() {}
func (Blob) isPart() {}

// Generator produces text for a system instruction and user content.
type Generator interface {
	Generate(ctx context.Context, instruction string, parts ...Part) (string, error)
}
