// Package assistant wraps the external text-generation collaborator.
// The engine hands it a serialized scoped context as the system
// instruction plus the user's prompt and gets one response string back:
// no streaming, no retained conversation state.
package assistant

import "context"

type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string, temperature float32) (string, error)
}
