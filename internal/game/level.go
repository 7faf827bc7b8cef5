package game

// Level pairs one exercise with one exam. The exam is gated behind
// completing the exercise; Clicked records that the exercise screen has
// been opened at least once.
type Level struct {
	Index    int
	Title    string
	Exercise *Section
	Exam     *Section
	Clicked  bool
}

func NewLevel(index int, title string, exercise, exam *Section) *Level {
	return &Level{Index: index, Title: title, Exercise: exercise, Exam: exam}
}

// MarkClicked is idempotent; it runs when the exercise screen for this
// level closes.
func (l *Level) MarkClicked() {
	l.Clicked = true
}

// ExamUnlocked reports whether the level's exam may be interacted with:
// the whole exercise must be correct first.
func (l *Level) ExamUnlocked() bool {
	return l.Exercise.Complete()
}
