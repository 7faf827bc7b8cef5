package state

import "context"

// AnswerRecord is one persisted answer: the stringified inputs of a
// single question, keyed by the question's full id.
type AnswerRecord struct {
	ID       string
	Level    string
	Question string
	Inputs   string
}

// Store is the durable store behind the game: a key-value table for
// settings and an answer table keyed by question id. Every call is
// atomic on its own; no cross-call transactions are required.
// Implementations must tolerate concurrent calls.
type Store interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	PutSetting(ctx context.Context, key, value string) error
	AllSettings(ctx context.Context) (map[string]string, error)

	GetAnswers(ctx context.Context) ([]AnswerRecord, error)
	PutAnswer(ctx context.Context, rec AnswerRecord) error
	DeleteAnswers(ctx context.Context) error

	Close() error
}
