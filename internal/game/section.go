package game

// Section is an ordered run of questions with a single active cursor.
// Both the exercise and the exam of a level are sections; they differ
// only in how the game gates access to them.
//
// Questions are grouped into tasks ("full questions"): visually grouped
// runs that share one status icon. taskEnd holds the exclusive end
// index of each task within Questions.
type Section struct {
	Questions   []*Question
	ActiveIndex int

	taskEnd []int
}

// NewSection builds a section from task groups. Empty tasks are
// dropped.
func NewSection(tasks [][]*Question) *Section {
	s := &Section{}
	for _, task := range tasks {
		if len(task) == 0 {
			continue
		}
		s.Questions = append(s.Questions, task...)
		s.taskEnd = append(s.taskEnd, len(s.Questions))
	}
	return s
}

// KeyPressed routes one key event to the active question. It returns
// the index of the question whose inputs changed, or -1 when nothing
// was mutated (the cursor may still have moved; compare ActiveIndex).
func (s *Section) KeyPressed(ch string) int {
	ch = NormalizeKey(ch)
	switch {
	case ch == KeyBackspace:
		return s.backspace()
	case ValidInput(ch):
		return s.fill(ch)
	}
	return -1
}

func (s *Section) fill(ch string) int {
	if s.ActiveIndex >= len(s.Questions) {
		return -1
	}
	q := s.Questions[s.ActiveIndex]
	slot := q.FirstEmptySlot()
	if slot < 0 {
		// Fully filled but not correct: the player must erase first.
		return -1
	}
	q.UpdateInput(slot, ch)
	idx := s.ActiveIndex
	s.Recompute()
	return idx
}

func (s *Section) backspace() int {
	idx := s.ActiveIndex
	if idx >= len(s.Questions) {
		if len(s.Questions) == 0 {
			return -1
		}
		idx = len(s.Questions) - 1
	}
	q := s.Questions[idx]
	if slot := q.LastFilledSlot(); slot >= 0 {
		q.UpdateInput(slot, "")
		s.Recompute()
		return idx
	}
	// Nothing to clear on the active question: step the cursor back.
	if idx > 0 {
		s.ActiveIndex = idx - 1
	}
	return -1
}

// Tapped moves the active cursor to question i when it is reachable:
// either every prior question is already correct, or the tapped
// question has been worked on before (revisiting a wrong answer).
// Unreachable taps are a no-op. Reports whether the cursor moved.
func (s *Section) Tapped(i int) bool {
	if i < 0 || i >= len(s.Questions) {
		return false
	}
	if !s.reachable(i) {
		return false
	}
	if s.ActiveIndex == i {
		return false
	}
	s.ActiveIndex = i
	return true
}

func (s *Section) reachable(i int) bool {
	if s.Questions[i].HasInput() {
		return true
	}
	for j := 0; j < i; j++ {
		if s.Questions[j].Status() != StatusCorrect {
			return false
		}
	}
	return true
}

// Recompute scans forward from the start for the first question that is
// not yet correct and parks the cursor there. A cursor equal to
// len(Questions) means the section is complete.
func (s *Section) Recompute() {
	for i, q := range s.Questions {
		if q.Status() != StatusCorrect {
			s.ActiveIndex = i
			return
		}
	}
	s.ActiveIndex = len(s.Questions)
}

// Complete reports whether every question in the section is correct.
func (s *Section) Complete() bool {
	return s.JointStatus() == StatusCorrect
}

func (s *Section) JointStatus() Status {
	return JointStatus(s.Questions)
}

// TaskCount returns the number of task groups.
func (s *Section) TaskCount() int {
	return len(s.taskEnd)
}

// TaskStatus returns the joint status of one task group, the value
// shown by its status icon.
func (s *Section) TaskStatus(task int) Status {
	if task < 0 || task >= len(s.taskEnd) {
		return StatusPartial
	}
	start := 0
	if task > 0 {
		start = s.taskEnd[task-1]
	}
	return JointStatus(s.Questions[start:s.taskEnd[task]])
}

// ActiveQuestion returns the question under the cursor, or nil when the
// section is complete.
func (s *Section) ActiveQuestion() *Question {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.ActiveIndex]
}

func (s *Section) clearInputs() {
	for _, q := range s.Questions {
		for i := range q.Inputs {
			q.Inputs[i] = ""
		}
	}
	s.ActiveIndex = 0
}
