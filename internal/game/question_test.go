package game

import "testing"

func TestInputsRoundTrip(t *testing.T) {
	cases := [][]string{
		{"3"},
		{""},
		{"1", "5"},
		{"", ""},
		{"9", "", "X"},
	}
	for _, inputs := range cases {
		q := NewQuestion("stub", make([]string, len(inputs)), 0)
		copy(q.Inputs, inputs)
		got, err := q.UnstringifyInputs(q.StringifyInputs())
		if err != nil {
			t.Fatalf("round trip %v: %v", inputs, err)
		}
		if len(got) != len(inputs) {
			t.Fatalf("round trip %v: got %v", inputs, got)
		}
		for i := range inputs {
			if got[i] != inputs[i] {
				t.Fatalf("round trip %v: got %v", inputs, got)
			}
		}
	}
}

func TestUnstringifyRejectsCorruptRecords(t *testing.T) {
	q := NewQuestion("3 + ? = 10", []string{"7"}, 0)
	if _, err := q.UnstringifyInputs("7,7"); err == nil {
		t.Fatalf("expected arity error")
	}
	if _, err := q.UnstringifyInputs("ab"); err == nil {
		t.Fatalf("expected alphabet error")
	}
	if err := q.RestoreInputs("zz"); err == nil {
		t.Fatalf("expected restore to fail")
	}
	if q.Inputs[0] != "" {
		t.Fatalf("corrupt restore must not touch inputs, got %q", q.Inputs[0])
	}
}

func TestUpdateInputOutOfRangeIsNoop(t *testing.T) {
	q := NewQuestion("? + ? = 9", []string{"4", "5"}, 0)
	q.UpdateInput(-1, "4")
	q.UpdateInput(2, "4")
	if q.HasInput() {
		t.Fatalf("out-of-range updates must not change inputs: %v", q.Inputs)
	}
}

func TestQuestionStatus(t *testing.T) {
	q := NewQuestion("? + ? = 9", []string{"4", "5"}, 0)
	if got := q.Status(); got != StatusPartial {
		t.Fatalf("empty question status = %v", got)
	}
	q.UpdateInput(0, "4")
	if got := q.Status(); got != StatusPartial {
		t.Fatalf("half-filled question status = %v", got)
	}
	q.UpdateInput(1, "6")
	if got := q.Status(); got != StatusWrong {
		t.Fatalf("mismatched question status = %v", got)
	}
	q.UpdateInput(1, "5")
	if got := q.Status(); got != StatusCorrect {
		t.Fatalf("solved question status = %v", got)
	}
}

func TestDisplaySubstitutesLeftToRight(t *testing.T) {
	q := NewQuestion("8 + 7 = ??", []string{"1", "5"}, 0)
	if got := q.Display(); got != "8 + 7 = ??" {
		t.Fatalf("blank display = %q", got)
	}
	q.UpdateInput(0, "1")
	if got := q.Display(); got != "8 + 7 = 1?" {
		t.Fatalf("half display = %q", got)
	}
	q.UpdateInput(1, "5")
	if got := q.Display(); got != "8 + 7 = 15" {
		t.Fatalf("full display = %q", got)
	}
}

func TestFullIDDistinguishesSections(t *testing.T) {
	q := NewQuestion("2 + 3 = ?", []string{"5"}, 3)
	if got := q.FullID(1, false); got != "l01-exercise-q03" {
		t.Fatalf("exercise id = %q", got)
	}
	if got := q.FullID(1, true); got != "l01-exam-q03" {
		t.Fatalf("exam id = %q", got)
	}
}

func TestJointStatus(t *testing.T) {
	correct := NewQuestion("1 + 1 = ?", []string{"2"}, 0)
	correct.UpdateInput(0, "2")
	wrong := NewQuestion("1 + 2 = ?", []string{"3"}, 1)
	wrong.UpdateInput(0, "4")
	partial := NewQuestion("1 + 3 = ?", []string{"4"}, 2)

	cases := []struct {
		name string
		qs   []*Question
		want Status
	}{
		{"all correct", []*Question{correct, correct}, StatusCorrect},
		{"partial dominates wrong", []*Question{wrong, partial}, StatusPartial},
		{"filled with mismatch", []*Question{correct, wrong}, StatusWrong},
		{"single partial", []*Question{partial}, StatusPartial},
	}
	for _, tc := range cases {
		if got := JointStatus(tc.qs); got != tc.want {
			t.Fatalf("%s: joint status = %v, want %v", tc.name, got, tc.want)
		}
	}
}
