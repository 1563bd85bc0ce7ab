// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from the environment and from a
// directory of plain-text files. A .env file in the working directory is
// folded into the environment first; then each known variable is probed,
// falling back to a file of the same role in the secrets directory (the
// filename is the key name, the trimmed contents are the value).
//
// Key values are never logged; callers report only which keys are set.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials holds every optional upstream credential. Empty fields
// mean the corresponding integration runs in fallback mode.
type Credentials struct {
	// Completion providers, probed in the order OpenAI, Llama, Claude.
	OpenAIKey string
	LlamaKey  string
	ClaudeKey string

	// Scholarly search extras.
	SemanticScholarKey string
	CrossRefEmail      string

	// NLP inference.
	HuggingFaceKey string

	// Webpage extraction and web search.
	ExtractURLKey string
	WebSearchKey  string
}

// envToFile maps environment variable names to secrets-directory
// filenames.
var envToFile = map[string]string{
	"OPENAI_API_KEY":           "openai-api-key",
	"LLAMA_API_KEY":            "llama-api-key",
	"CLAUDE_API_KEY":           "claude-api-key",
	"SEMANTIC_SCHOLAR_API_KEY": "semantic-scholar-api-key",
	"CROSSREF_EMAIL":           "crossref-email",
	"HUGGINGFACE_API_KEY":      "huggingface-api-key",
	"EXTRACTURL_API_KEY":       "extracturl-api-key",
	"WEBSEARCHRANKED_API_KEY":  "websearchranked-api-key",
}

// LoadDir reads all files in dir and returns a map of filename to
// trimmed contents. A missing directory is not an error; LoadDir returns
// an empty map. Unreadable files produce a warning on stderr but do not
// abort.
func LoadDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			values[name] = value
		}
	}

	return values, nil
}

// Load resolves credentials from .env, the process environment, and the
// secrets directory, in that precedence order for each key.
func Load(dir string) (Credentials, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	fromDir, err := LoadDir(dir)
	if err != nil {
		return Credentials{}, err
	}

	get := func(envKey string) string {
		if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
			return v
		}
		return fromDir[envToFile[envKey]]
	}

	return Credentials{
		OpenAIKey:          get("OPENAI_API_KEY"),
		LlamaKey:           get("LLAMA_API_KEY"),
		ClaudeKey:          get("CLAUDE_API_KEY"),
		SemanticScholarKey: get("SEMANTIC_SCHOLAR_API_KEY"),
		CrossRefEmail:      get("CROSSREF_EMAIL"),
		HuggingFaceKey:     get("HUGGINGFACE_API_KEY"),
		ExtractURLKey:      get("EXTRACTURL_API_KEY"),
		WebSearchKey:       get("WEBSEARCHRANKED_API_KEY"),
	}, nil
}

// SetKeys returns the names of the credentials that are set, for
// logging. Values are never included.
func (c Credentials) SetKeys() []string {
	var keys []string
	add := func(name, value string) {
		if value != "" {
			keys = append(keys, name)
		}
	}
	add("openai", c.OpenAIKey)
	add("llama", c.LlamaKey)
	add("claude", c.ClaudeKey)
	add("semantic-scholar", c.SemanticScholarKey)
	add("crossref-email", c.CrossRefEmail)
	add("huggingface", c.HuggingFaceKey)
	add("extracturl", c.ExtractURLKey)
	add("websearchranked", c.WebSearchKey)
	return keys
}
