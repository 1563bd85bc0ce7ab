// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm provides the pluggable text-completion backend used by the
// content generator. Providers are probed in a fixed priority order:
// OpenAI, then Llama, then Claude. The first provider with a configured
// credential is selected; when none is configured the generator runs in
// template-only mode.
//
// Llama and Claude credentials are recognized but the providers have no
// working implementation; their calls report ErrNotImplemented so the
// caller falls through to template text.
package llm

import (
	"context"
	"errors"

	"github.com/pdiddy/topic-wizard/internal/secrets"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

// ErrNotImplemented is reported by providers that accept a credential
// but have no completion implementation.
var ErrNotImplemented = errors.New("provider not implemented")

// Backend generates a completion for a prompt.
type Backend interface {
	// Name returns the provider identifier.
	Name() string

	// Complete returns the completion text for prompt, bounded by
	// maxTokens.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Probe selects the first provider with a configured credential, in the
// order OpenAI, Llama, Claude. It returns nil when no credential is set.
func Probe(creds secrets.Credentials, cfg types.LLMConfig) Backend {
	switch {
	case creds.OpenAIKey != "":
		return NewOpenAIBackend(creds.OpenAIKey, cfg)
	case creds.LlamaKey != "":
		return &StubBackend{Provider: string(types.ProviderLlama)}
	case creds.ClaudeKey != "":
		return &StubBackend{Provider: string(types.ProviderClaude)}
	default:
		return nil
	}
}

// StubBackend stands in for a provider whose credential is accepted but
// whose API is not wired up.
type StubBackend struct {
	Provider string
}

// Name returns the provider identifier.
func (s *StubBackend) Name() string { return s.Provider }

// Complete always reports ErrNotImplemented.
func (s *StubBackend) Complete(context.Context, string, int) (string, error) {
	return "", ErrNotImplemented
}
