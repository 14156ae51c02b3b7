package chatbot

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge_base.yaml
var defaultKnowledgeYAML []byte

var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

// Entry is a canned answer keyed by a topic phrase.
type Entry struct {
	Key     string   `yaml:"key"`
	Answer  string   `yaml:"answer"`
	Sources []string `yaml:"sources"`
}

// Fallback routes any of Keywords to the entry named Entry.
type Fallback struct {
	Keywords []string `yaml:"keywords"`
	Entry    string   `yaml:"entry"`
}

// KnowledgeBase is the versioned document behind the selector.
type KnowledgeBase struct {
	Version     string     `yaml:"version"`
	Greeting    string     `yaml:"greeting"`
	Entries     []Entry    `yaml:"entries"`
	Fallbacks   []Fallback `yaml:"fallbacks"`
	Generic     Entry      `yaml:"generic"`
	Suggestions []string   `yaml:"suggestions"`
}

// DefaultKnowledgeBase returns the embedded knowledge base.
func DefaultKnowledgeBase() (KnowledgeBase, error) {
	return ParseKnowledgeBase(defaultKnowledgeYAML)
}

// LoadKnowledgeBase reads path, or the embedded document when path is empty.
func LoadKnowledgeBase(path string) (KnowledgeBase, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultKnowledgeBase()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return KnowledgeBase{}, fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	return ParseKnowledgeBase(data)
}

func ParseKnowledgeBase(data []byte) (KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return KnowledgeBase{}, fmt.Errorf("%w: %v", ErrInvalidKnowledgeBase, err)
	}
	if err := kb.Validate(); err != nil {
		return KnowledgeBase{}, err
	}
	return kb, nil
}

func (kb KnowledgeBase) Validate() error {
	if strings.TrimSpace(kb.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidKnowledgeBase)
	}
	if len(kb.Entries) == 0 {
		return fmt.Errorf("%w: no entries", ErrInvalidKnowledgeBase)
	}
	keys := make(map[string]struct{}, len(kb.Entries))
	for _, e := range kb.Entries {
		key := strings.TrimSpace(e.Key)
		if key == "" || strings.TrimSpace(e.Answer) == "" {
			return fmt.Errorf("%w: entry needs key and answer", ErrInvalidKnowledgeBase)
		}
		if key != strings.ToLower(key) {
			return fmt.Errorf("%w: key %q must be lower case", ErrInvalidKnowledgeBase, key)
		}
		if _, dup := keys[key]; dup {
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidKnowledgeBase, key)
		}
		keys[key] = struct{}{}
	}
	for _, f := range kb.Fallbacks {
		if _, ok := keys[f.Entry]; !ok {
			return fmt.Errorf("%w: fallback targets unknown entry %q", ErrInvalidKnowledgeBase, f.Entry)
		}
		if len(f.Keywords) == 0 {
			return fmt.Errorf("%w: fallback for %q has no keywords", ErrInvalidKnowledgeBase, f.Entry)
		}
	}
	if strings.TrimSpace(kb.Generic.Answer) == "" {
		return fmt.Errorf("%w: generic answer is required", ErrInvalidKnowledgeBase)
	}
	return nil
}
