package game

import (
	"fmt"
	"strings"
)

// Blank is the placeholder marker inside a question template. Each
// occurrence corresponds to one input slot, left to right.
const Blank = "?"

// Question is a single fill-in problem: a template with blanks, the
// expected single-character answers, and the player's current entries.
// Inputs always has the same length as Correct; an empty string means
// the slot is unfilled.
type Question struct {
	Template string
	Correct  []string
	Inputs   []string

	pos int
}

func NewQuestion(template string, correct []string, pos int) *Question {
	return &Question{
		Template: template,
		Correct:  correct,
		Inputs:   make([]string, len(correct)),
		pos:      pos,
	}
}

// UpdateInput sets one slot's value. Out-of-range slots are ignored.
func (q *Question) UpdateInput(slot int, ch string) {
	if slot < 0 || slot >= len(q.Inputs) {
		return
	}
	q.Inputs[slot] = ch
}

// FirstEmptySlot returns the index of the leftmost unfilled slot, or -1
// when every slot is filled.
func (q *Question) FirstEmptySlot() int {
	for i, in := range q.Inputs {
		if in == "" {
			return i
		}
	}
	return -1
}

// LastFilledSlot returns the index of the rightmost filled slot, or -1
// when every slot is empty.
func (q *Question) LastFilledSlot() int {
	for i := len(q.Inputs) - 1; i >= 0; i-- {
		if q.Inputs[i] != "" {
			return i
		}
	}
	return -1
}

// HasInput reports whether at least one slot is filled.
func (q *Question) HasInput() bool {
	return q.LastFilledSlot() >= 0
}

func (q *Question) Status() Status {
	wrong := false
	for i, in := range q.Inputs {
		if in == "" {
			return StatusPartial
		}
		if in != q.Correct[i] {
			wrong = true
		}
	}
	if wrong {
		return StatusWrong
	}
	return StatusCorrect
}

// Display renders the template with each blank substituted by the
// corresponding filled input; unfilled slots keep the blank marker.
func (q *Question) Display() string {
	var b strings.Builder
	slot := 0
	for _, r := range q.Template {
		if string(r) == Blank && slot < len(q.Inputs) {
			if in := q.Inputs[slot]; in != "" {
				b.WriteString(in)
			} else {
				b.WriteString(Blank)
			}
			slot++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FullID is the durable persistence key for this question. It must stay
// stable across app versions; answer records are keyed by it.
func (q *Question) FullID(level int, inExam bool) string {
	kind := "exercise"
	if inExam {
		kind = "exam"
	}
	return fmt.Sprintf("l%02d-%s-q%02d", level, kind, q.pos)
}

// StringifyInputs encodes the current inputs for storage. Slots are
// joined with commas; the alphabet is single characters, so the
// separator can never collide with a value.
func (q *Question) StringifyInputs() string {
	return strings.Join(q.Inputs, ",")
}

// UnstringifyInputs decodes a stored inputs string. It rejects records
// whose slot count does not match this question or whose values fall
// outside the accepted alphabet, so corrupt rows can be dropped by the
// caller instead of poisoning the question.
func (q *Question) UnstringifyInputs(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != len(q.Correct) {
		return nil, fmt.Errorf("inputs record has %d slots, question has %d", len(parts), len(q.Correct))
	}
	for _, p := range parts {
		if p == "" {
			continue
		}
		if !ValidInput(p) {
			return nil, fmt.Errorf("invalid input value %q", p)
		}
	}
	return parts, nil
}

// RestoreInputs replaces the current inputs with a decoded stored
// record. The question is left untouched when the record is corrupt.
func (q *Question) RestoreInputs(s string) error {
	parts, err := q.UnstringifyInputs(s)
	if err != nil {
		return err
	}
	copy(q.Inputs, parts)
	return nil
}
