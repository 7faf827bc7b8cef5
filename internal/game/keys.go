package game

// KeyBackspace is the normalized backspace key event. Everything else
// reaching KeyPressed is expected to be a single character.
const KeyBackspace = "backspace"

// ValidInput reports whether ch is an accepted answer value: a single
// digit or the strike mark X.
func ValidInput(ch string) bool {
	if len(ch) != 1 {
		return false
	}
	c := ch[0]
	return (c >= '0' && c <= '9') || c == 'X'
}

// NormalizeKey maps key-event aliases onto the canonical alphabet. The
// presentation layer sends already-normalized single characters, but a
// lowercase x is accepted as the strike mark.
func NormalizeKey(ch string) string {
	if ch == "x" {
		return "X"
	}
	return ch
}
