package content

import "mathbook/internal/game"

// BuildLevels turns a validated pack into the game's level objects.
// Question positions are assigned sequentially within each section, in
// task order; they are part of the durable answer ids and must not be
// reordered once a pack has shipped.
func BuildLevels(p Pack) []*game.Level {
	levels := make([]*game.Level, 0, len(p.Levels))
	for i, spec := range p.Levels {
		exercise := buildSection(spec.Exercise)
		exam := buildSection(spec.Exam)
		levels = append(levels, game.NewLevel(i, spec.Title, exercise, exam))
	}
	return levels
}

func buildSection(spec SectionSpec) *game.Section {
	pos := 0
	tasks := make([][]*game.Question, 0, len(spec.Tasks))
	for _, task := range spec.Tasks {
		qs := make([]*game.Question, 0, len(task.Questions))
		for _, q := range task.Questions {
			qs = append(qs, game.NewQuestion(q.Template, append([]string(nil), q.Answers...), pos))
			pos++
		}
		tasks = append(tasks, qs)
	}
	return game.NewSection(tasks)
}
