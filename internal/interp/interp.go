package interp

import (
	"strconv"
	"strings"

	"github.com/zjrosen/keytrain/internal/grapheme"
	"github.com/zjrosen/keytrain/internal/log"
)

// Policy holds the configurable edge-case behaviors of the interpreter.
type Policy struct {
	// RepeatFindFallback makes ; and , try the inverted direction when the
	// primary direction yields no match before giving up.
	RepeatFindFallback bool

	// AroundWordLeadingFallback makes aw/aW take the preceding whitespace
	// run when the word has no trailing whitespace.
	AroundWordLeadingFallback bool
}

// DefaultPolicy returns the default interpreter policy.
func DefaultPolicy() Policy {
	return Policy{
		RepeatFindFallback:        false,
		AroundWordLeadingFallback: true,
	}
}

// Config configures an Interpreter.
type Config struct {
	// Notifier receives mode changes and status text. Defaults to NopNotifier.
	Notifier Notifier

	// Policy selects edge-case behaviors. Zero value = DefaultPolicy().
	Policy *Policy
}

// Metrics counts interpreter activity for session reporting.
type Metrics struct {
	KeysHandled  int
	EditsApplied int
	ModeSwitches int
}

// Interpreter is the modal key interpreter. It is strictly sequential:
// each key event is fully processed, including any buffer mutation and
// clipboard I/O, before the next event is accepted. No locking is needed
// because there is no concurrent access.
type Interpreter struct {
	state   State
	buf     Buffer
	clip    Clipboard
	notify  Notifier
	policy  Policy
	active  bool
	metrics Metrics
}

// New creates an interpreter over the given buffer and clipboard.
// The interpreter starts inactive; call Activate to begin handling keys.
func New(buf Buffer, clip Clipboard, cfg Config) *Interpreter {
	notify := cfg.Notifier
	if notify == nil {
		notify = NopNotifier{}
	}
	policy := DefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	return &Interpreter{
		state:  NewState(),
		buf:    buf,
		clip:   clip,
		notify: notify,
		policy: policy,
	}
}

// Activate resets the interpreter state and starts handling key events.
func (in *Interpreter) Activate() {
	in.state.Reset()
	in.active = true
	in.publishStatus()
}

// Deactivate resets the interpreter state and stops handling key events.
func (in *Interpreter) Deactivate() {
	in.state.Reset()
	in.active = false
}

// Active reports whether the interpreter is handling key events.
func (in *Interpreter) Active() bool {
	return in.active
}

// Mode returns the current editing mode.
func (in *Interpreter) Mode() Mode {
	return in.state.mode
}

// SetPolicy replaces the interpreter policy. Takes effect on the next key.
func (in *Interpreter) SetPolicy(p Policy) {
	in.policy = p
}

// Metrics returns the activity counters since the interpreter was created.
func (in *Interpreter) Metrics() Metrics {
	return in.metrics
}

// StatusText renders the current mode plus any in-flight command echo.
func (in *Interpreter) StatusText() string {
	s := in.state.mode.String()
	if echo := in.state.pendingEcho(); echo != "" {
		s += " " + echo
	}
	return s
}

// Handle processes one discrete key event. All effects are side effects on
// the buffer, clipboard, cursor, and mode/status notifier.
//
// Dispatch is priority-ordered, first match wins: inactive, Insert-mode
// forwarding, Escape, count digits, pending find target, immediate line
// operators, paste, find initiators, find repeats, pending-operator
// resolution, bare operators, and finally pure cursor motions.
func (in *Interpreter) Handle(ev KeyEvent) {
	if !in.active {
		return
	}
	in.metrics.KeysHandled++
	key := ev.Canonical()

	if in.state.mode == ModeInsert {
		in.handleInsertKey(ev, key)
		in.publishStatus()
		return
	}

	if key == KeyEscape {
		in.state.clearTransient()
		in.publishStatus()
		return
	}

	// Count digits accumulate and return without further dispatch.
	// A leading 0 is the line-start motion, not a count digit.
	if isCountDigit(key, in.state.countBuffer) {
		in.state.countBuffer += key
		in.publishStatus()
		return
	}

	count := in.takeCount()

	switch {
	case in.state.pendingFind != FindNone:
		in.resolvePendingFind(key, count)

	case key == "D" || key == "C" || key == "Y":
		in.state.pendingOperator = OpNone
		in.state.pendingOperatorCount = 0
		in.applyImmediateLineOperator(key)

	case key == "p" || key == "P":
		in.state.pendingOperator = OpNone
		in.state.pendingOperatorCount = 0
		in.paste(key)

	case findKindForKey(key) != FindNone:
		// Fold the count typed before f/F/t/T into the pending count so
		// the target-character event composes d3fx and 2fx correctly.
		in.state.pendingFind = findKindForKey(key)
		in.state.pendingOperatorCount = max(1, in.state.pendingOperatorCount) * count

	case key == ";" || key == ",":
		in.repeatFind(key, count)

	case in.state.pendingOperator != OpNone:
		in.resolvePendingOperator(key, count)

	case operatorForKey(key) != OpNone:
		in.state.pendingOperator = operatorForKey(key)
		in.state.pendingOperatorCount = count

	case isMotionKey(key):
		// Pure motions repeat independently, re-reading the buffer each
		// step so clamps at line boundaries stay safe.
		for i := 0; i < count; i++ {
			next, ok := motionStep(in.buf, in.buf.Cursor(), key)
			if !ok {
				break
			}
			in.buf.SetCursor(next)
		}

	default:
		in.handleInsertEntry(key)
	}

	in.publishStatus()
}

// isCountDigit reports whether key extends the count buffer. 1-9 always do;
// 0 only once the buffer is non-empty (a leading 0 is a motion).
func isCountDigit(key, countBuffer string) bool {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return false
	}
	if key == "0" {
		return countBuffer != ""
	}
	return true
}

// takeCount consumes the count buffer, returning max(1, its value).
func (in *Interpreter) takeCount() int {
	defer func() { in.state.countBuffer = "" }()
	if in.state.countBuffer == "" {
		return 1
	}
	n, err := strconv.Atoi(in.state.countBuffer)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ============================================================================
// Pending find resolution
// ============================================================================

// resolvePendingFind treats key as the target character of the pending
// f/F/t/T motion and either moves the cursor or applies the pending
// operator over the find range. A miss is a benign no-op that still
// consumes the operator and the pending state.
func (in *Interpreter) resolvePendingFind(key string, count int) {
	kind := in.state.pendingFind
	op := in.state.pendingOperator
	n := max(1, in.state.pendingOperatorCount*count)

	in.state.pendingFind = FindNone
	in.state.pendingOperator = OpNone
	in.state.pendingOperatorCount = 0

	// Special keys cannot be find targets.
	if key == "" || strings.HasPrefix(key, "<") {
		return
	}

	in.state.lastFind = FindSpec{Kind: kind, Char: key}
	in.state.lastFindOperator = op

	cur := in.buf.Cursor()
	res, ok := resolveFind(in.buf, kind, key, n)
	if !ok {
		log.Debug(log.CatInterp, "Find target not found", "kind", kind.Key(), "char", key, "n", n)
		return
	}

	if op != OpNone {
		in.applyOperator(op, findRange(cur, kind, res))
		return
	}
	in.buf.SetCursor(res.cursor)
}

// repeatFind re-executes the last find motion: ; keeps the original
// direction, , inverts it. When the last find was combined with an
// operator and no new operator is pending, the operator is re-applied over
// the newly resolved range.
func (in *Interpreter) repeatFind(key string, count int) {
	newOpPending := in.state.pendingOperator != OpNone
	in.state.pendingOperator = OpNone
	in.state.pendingOperatorCount = 0

	if in.state.lastFind.IsZero() {
		return
	}

	kind := in.state.lastFind.Kind
	if key == "," {
		kind = kind.Invert()
	}

	res, ok := resolveFind(in.buf, kind, in.state.lastFind.Char, max(1, count))
	if !ok && in.policy.RepeatFindFallback {
		kind = kind.Invert()
		res, ok = resolveFind(in.buf, kind, in.state.lastFind.Char, max(1, count))
	}
	if !ok {
		return
	}

	if !newOpPending && in.state.lastFindOperator != OpNone {
		in.applyOperator(in.state.lastFindOperator, findRange(in.buf.Cursor(), kind, res))
		return
	}
	in.buf.SetCursor(res.cursor)
}

// ============================================================================
// Pending operator resolution
// ============================================================================

// resolvePendingOperator handles the key following an operator: an i/a
// text-object prefix, the doubled-operator line form, or a motion that
// bounds the operator's range. Anything else cancels the operator.
func (in *Interpreter) resolvePendingOperator(key string, count int) {
	op := in.state.pendingOperator

	// i/a prefix: remember the scope and await the word-class key.
	if in.state.textObjectScope == ScopeNone && (key == "i" || key == "a") {
		if key == "i" {
			in.state.textObjectScope = ScopeInner
		} else {
			in.state.textObjectScope = ScopeAround
		}
		return
	}

	if in.state.textObjectScope != ScopeNone {
		scope := in.state.textObjectScope
		in.state.textObjectScope = ScopeNone
		in.state.pendingOperator = OpNone
		in.state.pendingOperatorCount = 0

		if !isTextObjectKey(key) {
			return
		}
		r, ok := textObjectRange(in.buf, scope, key == "W", in.policy.AroundWordLeadingFallback)
		if !ok {
			log.Debug(log.CatInterp, "No text object at cursor", "operator", op.String(), "scope", scope.Key(), "key", key)
			return
		}
		in.applyOperator(op, r)
		return
	}

	effective := max(1, in.state.pendingOperatorCount) * count
	in.state.pendingOperator = OpNone
	in.state.pendingOperatorCount = 0

	// Doubled operator key is the whole-line shorthand (dd, yy, cc).
	if key == op.Key() {
		in.applyLineOperator(op, effective)
		return
	}

	if isMotionKey(key) {
		r, ok := motionRange(in.buf, key, effective)
		if !ok || r.IsEmpty() {
			return
		}
		in.applyOperator(op, r)
		return
	}

	// Any other key (including a different operator) consumes the pending
	// operator with no effect.
}

// ============================================================================
// Insert mode
// ============================================================================

// handleInsertKey forwards literal text to the buffer. Escape returns to
// Normal mode; Backspace deletes left (joining lines at column 0); all
// other non-text keys are swallowed.
func (in *Interpreter) handleInsertKey(ev KeyEvent, key string) {
	switch key {
	case KeyEscape:
		in.state.clearTransient()
		in.setMode(ModeNormal)
		return
	case KeyBackspace:
		cur := in.buf.Cursor()
		if cur.Col > 0 {
			in.buf.DeleteRange(Range{
				Start: Position{Line: cur.Line, Col: cur.Col - 1},
				End:   cur,
			})
			in.buf.SetCursor(Position{Line: cur.Line, Col: cur.Col - 1})
			in.metrics.EditsApplied++
		} else if cur.Line > 0 {
			joinAt := in.buf.LineEndPosition(cur.Line - 1)
			in.buf.DeleteRange(Range{Start: joinAt, End: cur})
			in.buf.SetCursor(joinAt)
			in.metrics.EditsApplied++
		}
		return
	}

	text := ev.Text()
	if text == "" {
		return
	}
	cur := in.buf.Cursor()
	in.buf.InsertText(cur, text)
	in.buf.SetCursor(advancePosition(cur, text))
	in.metrics.EditsApplied++
}

// handleInsertEntry handles the Normal-mode keys that enter Insert mode at
// a chosen position. Unrecognized keys are silently ignored.
func (in *Interpreter) handleInsertEntry(key string) {
	cur := in.buf.Cursor()
	switch key {
	case "i":
		in.enterInsert()
	case "a":
		in.buf.SetCursor(Position{Line: cur.Line, Col: cur.Col + 1})
		in.enterInsert()
	case "I":
		in.buf.SetCursor(Position{Line: cur.Line, Col: 0})
		in.enterInsert()
	case "A":
		in.buf.SetCursor(in.buf.LineEndPosition(cur.Line))
		in.enterInsert()
	case "o":
		end := in.buf.LineEndPosition(cur.Line)
		in.buf.InsertText(end, "\n")
		in.buf.SetCursor(Position{Line: cur.Line + 1, Col: 0})
		in.metrics.EditsApplied++
		in.enterInsert()
	case "O":
		in.buf.InsertText(Position{Line: cur.Line, Col: 0}, "\n")
		in.buf.SetCursor(Position{Line: cur.Line, Col: 0})
		in.metrics.EditsApplied++
		in.enterInsert()
	}
}

// enterInsert switches to Insert mode, clearing any partial command state
// so the operator invariant holds.
func (in *Interpreter) enterInsert() {
	in.state.clearTransient()
	in.setMode(ModeInsert)
}

// setMode switches modes and notifies the host.
func (in *Interpreter) setMode(m Mode) {
	if in.state.mode == m {
		return
	}
	prev := in.state.mode
	in.state.mode = m
	in.metrics.ModeSwitches++
	log.Debug(log.CatInterp, "Mode change", "from", prev.String(), "to", m.String())
	in.notify.ModeChanged(m, prev)
}

// publishStatus pushes the current status text to the notifier.
func (in *Interpreter) publishStatus() {
	in.notify.Status(in.StatusText())
}

// advancePosition returns the position just after text inserted at pos.
func advancePosition(pos Position, text string) Position {
	if !strings.Contains(text, "\n") {
		return Position{Line: pos.Line, Col: pos.Col + grapheme.Count(text)}
	}
	parts := strings.Split(text, "\n")
	return Position{
		Line: pos.Line + len(parts) - 1,
		Col:  grapheme.Count(parts[len(parts)-1]),
	}
}
