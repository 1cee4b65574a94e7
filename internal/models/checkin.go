// checkin.go
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CheckinQuestion struct to match the YAML structure
type CheckinQuestion struct {
	ID      string          `yaml:"id"`
	Prompt  string          `yaml:"prompt"`
	Options []CheckinOption `yaml:"options"`
}

// CheckinOption struct for question choices. Score is on the 0-10 mood scale.
type CheckinOption struct {
	Label string  `yaml:"label"`
	Score float64 `yaml:"score"`
}

// Questionnaire holds the fixed, ordered set of daily check-in questions.
type Questionnaire struct {
	Questions []CheckinQuestion `yaml:"questions"`
}

// LoadQuestionnaire reads and parses the check-in questions YAML file.
func LoadQuestionnaire(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read check-in questions file: %w", err)
	}

	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal check-in questions YAML: %w", err)
	}

	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("check-in questions file %s contains no questions", path)
	}
	for i, question := range q.Questions {
		if len(question.Options) == 0 {
			return nil, fmt.Errorf("check-in question %q (index %d) has no options", question.ID, i)
		}
	}

	return &q, nil
}
