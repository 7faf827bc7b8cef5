package game

// Status is the derived answer state of a question or a group of questions.
type Status int

const (
	// StatusPartial means at least one blank is still unfilled.
	StatusPartial Status = iota
	// StatusWrong means every blank is filled and at least one mismatches.
	StatusWrong
	// StatusCorrect means every blank is filled and all of them match.
	StatusCorrect
)

func (s Status) String() string {
	switch s {
	case StatusWrong:
		return "wrong"
	case StatusCorrect:
		return "correct"
	default:
		return "partial"
	}
}

// JointStatus folds the statuses of a group of questions into one.
// Partial dominates while any member is partial; once everything is
// filled, a single mismatch makes the whole group wrong.
func JointStatus(questions []*Question) Status {
	wrong := false
	for _, q := range questions {
		switch q.Status() {
		case StatusPartial:
			return StatusPartial
		case StatusWrong:
			wrong = true
		}
	}
	if wrong {
		return StatusWrong
	}
	return StatusCorrect
}
