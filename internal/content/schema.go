package content

import (
	"fmt"
	"regexp"
	"strings"

	"mathbook/internal/game"
)

const (
	PackKind               = "exercise_pack"
	SupportedSchemaVersion = 1
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,63}$`)

// Pack is one YAML-defined set of leveled exercises and exams.
type Pack struct {
	Kind          string      `yaml:"kind"`
	SchemaVersion int         `yaml:"schema_version"`
	PackID        string      `yaml:"pack_id"`
	Name          string      `yaml:"name"`
	Levels        []LevelSpec `yaml:"levels"`

	Path string `yaml:"-"`
}

type LevelSpec struct {
	LevelID  string      `yaml:"level_id"`
	Title    string      `yaml:"title"`
	Exercise SectionSpec `yaml:"exercise"`
	Exam     SectionSpec `yaml:"exam"`
}

type SectionSpec struct {
	Tasks []TaskSpec `yaml:"tasks"`
}

// TaskSpec is one "full question": a run of question rows sharing a
// single status icon.
type TaskSpec struct {
	Questions []QuestionSpec `yaml:"questions"`
}

type QuestionSpec struct {
	Template string   `yaml:"template"`
	Answers  []string `yaml:"answers"`
}

func (p Pack) Validate() error {
	if p.Kind != PackKind {
		return fmt.Errorf("kind must be %q", PackKind)
	}
	if p.SchemaVersion == 0 {
		return fmt.Errorf("schema_version is required")
	}
	if p.SchemaVersion > SupportedSchemaVersion {
		return fmt.Errorf("unsupported pack schema_version %d (max supported %d)", p.SchemaVersion, SupportedSchemaVersion)
	}
	if !idPattern.MatchString(p.PackID) {
		return fmt.Errorf("invalid pack_id %q", p.PackID)
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.Levels) == 0 {
		return fmt.Errorf("pack must contain at least one level")
	}
	seen := map[string]struct{}{}
	for i, lvl := range p.Levels {
		if err := lvl.validate(); err != nil {
			return fmt.Errorf("levels[%d]: %w", i, err)
		}
		if _, ok := seen[lvl.LevelID]; ok {
			return fmt.Errorf("duplicate level_id %q", lvl.LevelID)
		}
		seen[lvl.LevelID] = struct{}{}
	}
	return nil
}

func (l LevelSpec) validate() error {
	if !idPattern.MatchString(l.LevelID) {
		return fmt.Errorf("invalid level_id %q", l.LevelID)
	}
	if l.Title == "" {
		return fmt.Errorf("title is required")
	}
	if err := l.Exercise.validate(); err != nil {
		return fmt.Errorf("exercise: %w", err)
	}
	if err := l.Exam.validate(); err != nil {
		return fmt.Errorf("exam: %w", err)
	}
	return nil
}

func (s SectionSpec) validate() error {
	if len(s.Tasks) == 0 {
		return fmt.Errorf("must contain at least one task")
	}
	for i, task := range s.Tasks {
		if len(task.Questions) == 0 {
			return fmt.Errorf("tasks[%d] must contain at least one question", i)
		}
		for j, q := range task.Questions {
			if err := q.validate(); err != nil {
				return fmt.Errorf("tasks[%d].questions[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

func (q QuestionSpec) validate() error {
	if strings.TrimSpace(q.Template) == "" {
		return fmt.Errorf("template is required")
	}
	blanks := strings.Count(q.Template, game.Blank)
	if blanks == 0 {
		return fmt.Errorf("template %q has no blanks", q.Template)
	}
	if blanks != len(q.Answers) {
		return fmt.Errorf("template %q has %d blanks but %d answers", q.Template, blanks, len(q.Answers))
	}
	for _, a := range q.Answers {
		if !game.ValidInput(a) {
			return fmt.Errorf("answer %q is not a single digit or X", a)
		}
	}
	return nil
}
