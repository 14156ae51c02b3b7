package assessments

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBankYAML []byte

// OptionsPerQuestion is the fixed number of answer labels; answers index 0..4.
const OptionsPerQuestion = 5

// Category groups questions by the skill they probe.
type Category string

const (
	CategoryMemory  Category = "memory"
	CategoryFocus   Category = "focus"
	CategoryReading Category = "reading"
	CategoryVisual  Category = "visual"
)

// Question is one multiple-choice item of the questionnaire.
type Question struct {
	ID       int      `yaml:"id" json:"id"`
	Category Category `yaml:"category" json:"category"`
	Prompt   string   `yaml:"prompt" json:"prompt"`
	Options  []string `yaml:"options" json:"options"`
}

// Bank is a versioned, ordered question set.
type Bank struct {
	Version   string     `yaml:"version" json:"version"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Len returns the number of questions.
func (b Bank) Len() int { return len(b.Questions) }

// MaxRaw is the highest possible answer sum.
func (b Bank) MaxRaw() int { return b.Len() * (OptionsPerQuestion - 1) }

// DefaultBank returns the embedded reference bank.
func DefaultBank() (Bank, error) {
	return ParseBank(defaultBankYAML)
}

// LoadBank reads a bank from path, or the embedded bank when path is empty.
func LoadBank(path string) (Bank, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultBank()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read question bank %s: %w", path, err)
	}
	return ParseBank(data)
}

// ParseBank decodes and validates a YAML bank document.
func ParseBank(data []byte) (Bank, error) {
	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return Bank{}, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if err := bank.Validate(); err != nil {
		return Bank{}, err
	}
	return bank, nil
}

// Validate checks the structural invariants of the bank.
func (b Bank) Validate() error {
	if strings.TrimSpace(b.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidBank)
	}
	if len(b.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	seen := make(map[int]struct{}, len(b.Questions))
	for i, q := range b.Questions {
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = struct{}{}
		switch q.Category {
		case CategoryMemory, CategoryFocus, CategoryReading, CategoryVisual:
		default:
			return fmt.Errorf("%w: question %d has unknown category %q", ErrInvalidBank, i, q.Category)
		}
		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("%w: question %d has no prompt", ErrInvalidBank, q.ID)
		}
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("%w: question %d needs %d options, has %d", ErrInvalidBank, q.ID, OptionsPerQuestion, len(q.Options))
		}
	}
	return nil
}
