package game

import (
	"context"
	"fmt"
	"sync"

	"mathbook/internal/state"
	"mathbook/internal/telemetry"
)

// ScrollType tells the presentation layer how to bring the active
// question into view.
type ScrollType int

const (
	ScrollNone ScrollType = iota
	ScrollAnimate
	ScrollJump
)

const (
	opAnswer = iota
	opSetting
	opClear
	opFlush
)

type writeOp struct {
	kind  int
	rec   state.AnswerRecord
	key   string
	value string
	ack   chan struct{}
}

// Options configures a Game. Store may be nil for a purely in-memory
// game (tests); Logger may be nil.
type Options struct {
	Store          state.Store
	Logger         *telemetry.Logger
	DebugUnlockAll bool
}

// Game owns the ordered levels, the navigation state, the unlock
// thresholds, and the persistence bridge. All mutations run to
// completion under one mutex; durable writes are handed to a single
// background writer so a later write for a key can never overtake an
// earlier one.
type Game struct {
	mu sync.Mutex

	levels         []*Level
	levelsUnlocked int
	activeLevel    int
	activeExam     int
	pushDepth      int
	finished       bool

	// inputSinceFocus flips to true on the first key or tap after a
	// screen gains focus; until then scrolling jumps instead of
	// animating.
	inputSinceFocus bool

	debugUnlockAll bool

	store  state.Store
	logger *telemetry.Logger

	writes chan writeOp
	done   chan struct{}
	closed bool

	subs    map[int]func()
	nextSub int

	byID map[string]*Question
}

func New(levels []*Level, opts Options) *Game {
	g := &Game{
		levels:         levels,
		activeLevel:    -1,
		activeExam:     -1,
		debugUnlockAll: opts.DebugUnlockAll,
		store:          opts.Store,
		logger:         opts.Logger,
		writes:         make(chan writeOp, 256),
		done:           make(chan struct{}),
		subs:           map[int]func(){},
		byID:           map[string]*Question{},
	}
	for _, lvl := range levels {
		for _, q := range lvl.Exercise.Questions {
			g.byID[q.FullID(lvl.Index, false)] = q
		}
		for _, q := range lvl.Exam.Questions {
			g.byID[q.FullID(lvl.Index, true)] = q
		}
	}
	g.recomputeLocked()
	go g.writer()
	return g
}

// Close flushes pending durable writes and stops the writer. The store
// itself stays open; its owner closes it. Mutations after Close still
// work in memory; only their persistence is dropped. Idempotent.
func (g *Game) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()
	close(g.writes)
	<-g.done
	return nil
}

// enqueueLocked hands a write to the background writer. Callers hold
// the game lock, so a send can never race the channel close in Close.
func (g *Game) enqueueLocked(op writeOp) {
	if g.closed {
		return
	}
	g.writes <- op
}

// Flush blocks until every write issued so far has reached the store.
func (g *Game) Flush() {
	ack := make(chan struct{})
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.writes <- writeOp{kind: opFlush, ack: ack}
	g.mu.Unlock()
	<-ack
}

func (g *Game) writer() {
	defer close(g.done)
	for op := range g.writes {
		g.applyWrite(op)
		if op.ack != nil {
			close(op.ack)
		}
	}
}

func (g *Game) applyWrite(op writeOp) {
	if g.store == nil {
		return
	}
	ctx := context.Background()
	var err error
	switch op.kind {
	case opAnswer:
		err = g.store.PutAnswer(ctx, op.rec)
	case opSetting:
		err = g.store.PutSetting(ctx, op.key, op.value)
	case opClear:
		err = g.store.DeleteAnswers(ctx)
	}
	if err != nil {
		g.logger.Warn("store.write_failed", map[string]any{"error": err.Error()})
	}
}

// Subscribe registers a state-change callback and returns the matching
// unsubscribe. Callbacks run after each mutating operation, outside the
// game lock; subscribers re-read whatever accessors they need.
func (g *Game) Subscribe(fn func()) func() {
	g.mu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		delete(g.subs, id)
		g.mu.Unlock()
	}
}

func (g *Game) subscribersLocked() []func() {
	out := make([]func(), 0, len(g.subs))
	for _, fn := range g.subs {
		out = append(out, fn)
	}
	return out
}

func notifyAll(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

// LoadAnswers restores every persisted answer into its question and
// returns the id -> inputs mapping that was applied. Corrupt records
// and records for unknown questions are dropped; a store read failure
// leaves the game blank and is reported to the caller, who treats it
// as loss of persistence, not a fatal error.
func (g *Game) LoadAnswers(ctx context.Context) (map[string]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := map[string]string{}
	if g.store == nil {
		return out, nil
	}
	recs, err := g.store.GetAnswers(ctx)
	if err != nil {
		return out, fmt.Errorf("load answers: %w", err)
	}
	for _, rec := range recs {
		q, ok := g.byID[rec.ID]
		if !ok {
			g.logger.Warn("answers.unknown_record", map[string]any{"id": rec.ID})
			continue
		}
		if err := q.RestoreInputs(rec.Inputs); err != nil {
			g.logger.Warn("answers.corrupt_record", map[string]any{"id": rec.ID, "error": err.Error()})
			continue
		}
		out[rec.ID] = rec.Inputs
	}
	for _, lvl := range g.levels {
		lvl.Exercise.Recompute()
		lvl.Exam.Recompute()
	}
	g.recomputeLocked()
	g.inputSinceFocus = false
	return out, nil
}

// StoreKeyValue schedules a durable settings write. The in-memory
// effect of whatever the value encodes is the caller's concern; this
// is fire-and-forget persistence.
func (g *Game) StoreKeyValue(key, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enqueueLocked(writeOp{kind: opSetting, key: key, value: value})
}

// LoadKeyValue reads one setting. Absent keys and store failures both
// read as absent.
func (g *Game) LoadKeyValue(ctx context.Context, key string) (string, bool) {
	if g.store == nil {
		return "", false
	}
	v, ok, err := g.store.GetSetting(ctx, key)
	if err != nil {
		g.logger.Warn("store.read_failed", map[string]any{"key": key, "error": err.Error()})
		return "", false
	}
	return v, ok
}

// PushLevel opens the exercise screen for a level. Locked levels are a
// no-op unless the debug override is set. Re-entrant pushes are
// tolerated via a depth counter.
func (g *Game) PushLevel(idx int) {
	g.mu.Lock()
	if idx < 0 || idx >= len(g.levels) || (idx > g.levelsUnlocked && !g.debugUnlockAll) {
		g.mu.Unlock()
		return
	}
	g.pushDepth++
	g.activeLevel = idx
	g.inputSinceFocus = false
	subs := g.subscribersLocked()
	g.mu.Unlock()
	notifyAll(subs)
}

// PopLevel closes the exercise screen. When the navigation depth
// returns to zero the level is marked clicked and the exam state is
// recomputed.
func (g *Game) PopLevel() {
	g.mu.Lock()
	if g.pushDepth == 0 {
		g.mu.Unlock()
		return
	}
	g.pushDepth--
	if g.pushDepth == 0 {
		if g.activeLevel >= 0 && g.activeLevel < len(g.levels) {
			g.levels[g.activeLevel].MarkClicked()
		}
		g.activeLevel = -1
		g.recomputeLocked()
		g.inputSinceFocus = false
	}
	subs := g.subscribersLocked()
	g.mu.Unlock()
	notifyAll(subs)
}

// LevelTapped moves the active cursor of a section. For exam taps,
// levelIdx selects which level's exam gains focus; the exams screen
// must be showing and that exam unlocked. For exercise taps, levelIdx
// is ignored and the pushed exercise receives the tap.
func (g *Game) LevelTapped(questionIdx int, inExam bool, levelIdx int) {
	g.mu.Lock()
	changed := false
	if inExam {
		if g.pushDepth == 0 && g.examReachableLocked(levelIdx) {
			if g.activeExam != levelIdx {
				g.activeExam = levelIdx
				changed = true
			}
			if g.levels[levelIdx].Exam.Tapped(questionIdx) {
				changed = true
			}
		}
	} else if g.pushDepth > 0 && g.activeLevel >= 0 {
		changed = g.levels[g.activeLevel].Exercise.Tapped(questionIdx)
	}
	if changed {
		g.inputSinceFocus = true
	}
	subs := g.subscribersLocked()
	g.mu.Unlock()
	if changed {
		notifyAll(subs)
	}
}

// KeyPressed routes one key event to whichever section currently has
// focus: the pushed exercise, else the active exam on the exams screen.
// Unrecognized characters and events with no focused section are
// silently dropped.
func (g *Game) KeyPressed(ch string) {
	g.mu.Lock()
	sec, lvl, inExam := g.focusedSectionLocked()
	if sec == nil {
		g.mu.Unlock()
		return
	}
	before := sec.ActiveIndex
	idx := sec.KeyPressed(ch)
	changed := idx >= 0 || sec.ActiveIndex != before
	if idx >= 0 {
		q := sec.Questions[idx]
		g.enqueueLocked(writeOp{kind: opAnswer, rec: answerRecord(lvl, inExam, q)})
		if inExam {
			g.recomputeLocked()
		}
	}
	if changed {
		g.inputSinceFocus = true
	}
	subs := g.subscribersLocked()
	g.mu.Unlock()
	if changed {
		notifyAll(subs)
	}
}

func answerRecord(lvl *Level, inExam bool, q *Question) state.AnswerRecord {
	kind := "exercise"
	if inExam {
		kind = "exam"
	}
	return state.AnswerRecord{
		ID:       q.FullID(lvl.Index, inExam),
		Level:    fmt.Sprintf("l%02d", lvl.Index),
		Question: fmt.Sprintf("%s-q%02d", kind, q.pos),
		Inputs:   q.StringifyInputs(),
	}
}

func (g *Game) focusedSectionLocked() (*Section, *Level, bool) {
	if g.pushDepth > 0 && g.activeLevel >= 0 && g.activeLevel < len(g.levels) {
		lvl := g.levels[g.activeLevel]
		return lvl.Exercise, lvl, false
	}
	if g.pushDepth > 0 {
		return nil, nil, false
	}
	if g.examReachableLocked(g.activeExam) {
		lvl := g.levels[g.activeExam]
		return lvl.Exam, lvl, true
	}
	// No exam explicitly focused: route to the frontier exam, the
	// first unlocked exam that is not yet solved.
	for i, lvl := range g.levels {
		if i > g.levelsUnlocked {
			break
		}
		if lvl.ExamUnlocked() && !lvl.Exam.Complete() {
			return lvl.Exam, lvl, true
		}
	}
	return nil, nil, false
}

func (g *Game) examReachableLocked(idx int) bool {
	return idx >= 0 && idx < len(g.levels) &&
		idx <= g.levelsUnlocked &&
		g.levels[idx].ExamUnlocked()
}

// RecomputeExamsState re-derives the unlock threshold and the finished
// flag from the exam statuses. Safe to call at any time; idempotent.
func (g *Game) RecomputeExamsState() {
	g.mu.Lock()
	beforeUnlocked, beforeFinished := g.levelsUnlocked, g.finished
	g.recomputeLocked()
	changed := g.levelsUnlocked != beforeUnlocked || g.finished != beforeFinished
	subs := g.subscribersLocked()
	g.mu.Unlock()
	if changed {
		notifyAll(subs)
	}
}

// recomputeLocked advances levelsUnlocked to the first level whose exam
// is not yet solved: solving exam i unlocks both the exercise and the
// exam interactions of level i+1.
func (g *Game) recomputeLocked() {
	n := 0
	for n < len(g.levels) && g.levels[n].Exam.Complete() {
		n++
	}
	if len(g.levels) > 0 && n >= len(g.levels) {
		n = len(g.levels) - 1
	}
	g.levelsUnlocked = n
	fin := len(g.levels) > 0 && g.levels[len(g.levels)-1].Exam.Complete()
	if fin && !g.finished {
		g.logger.Info("game.finished", nil)
	}
	g.finished = fin
}

// ResetProgress clears every question, the navigation state, and the
// persisted answer table. In-memory state resets atomically under the
// game lock; the table delete is ordered behind any still-pending
// answer writes so the store converges on empty.
func (g *Game) ResetProgress() {
	g.mu.Lock()
	for _, lvl := range g.levels {
		lvl.Exercise.clearInputs()
		lvl.Exam.clearInputs()
		lvl.Clicked = false
	}
	g.activeLevel = -1
	g.activeExam = -1
	g.pushDepth = 0
	g.inputSinceFocus = false
	g.recomputeLocked()
	g.enqueueLocked(writeOp{kind: opClear})
	g.logger.Info("progress.reset", nil)
	subs := g.subscribersLocked()
	g.mu.Unlock()
	notifyAll(subs)
}

// DoStatusAnimation reports whether the wrong-answer shake should play:
// only while a screen is focused and its active question is wrong.
func (g *Game) DoStatusAnimation() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	sec, _, _ := g.focusedSectionLocked()
	if sec == nil {
		return false
	}
	q := sec.ActiveQuestion()
	return q != nil && q.Status() == StatusWrong
}

// DoScrollAnimation reports how to bring the active question into
// view: jump on a freshly opened or freshly loaded screen, animate once
// the player has interacted.
func (g *Game) DoScrollAnimation() ScrollType {
	g.mu.Lock()
	defer g.mu.Unlock()
	sec, _, _ := g.focusedSectionLocked()
	if sec == nil {
		return ScrollNone
	}
	if !g.inputSinceFocus {
		return ScrollJump
	}
	return ScrollAnimate
}

// Levels returns the level list for rendering. The slice is a copy,
// so the caller cannot reorder the game's own list; the levels
// themselves are still shared and must be treated as read-only, with
// all mutation going through the game's operations.
func (g *Game) Levels() []*Level {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Level, len(g.levels))
	copy(out, g.levels)
	return out
}

func (g *Game) LevelsUnlocked() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levelsUnlocked
}

// ActiveLevel returns the level open in the exercise screen, or -1.
func (g *Game) ActiveLevel() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pushDepth == 0 {
		return -1
	}
	return g.activeLevel
}

// InExamScreen reports whether the exams screen is showing (no
// exercise pushed).
func (g *Game) InExamScreen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pushDepth == 0
}

func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finished
}

// ExamUnlocked reports whether the exam of level idx may be opened.
func (g *Game) ExamUnlocked(idx int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.examReachableLocked(idx)
}
