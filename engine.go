package pego

import "bytes"

// frame is a single state-stack activation (spec.md §3.4): it binds one
// expression to an input position plus the two general-purpose registers
// (r1, r2) each operator's dispatch rule interprets differently — an
// alternative/child cursor for Sequence/Choice/Quantifier/Not, and an
// accumulated-consumption counter for Sequence/Quantifier. actionSnapshot
// and queuedAt both start out equal to the action-stack depth at push time,
// but serve different purposes and diverge once a Sequence/Quantifier
// frame's children start succeeding (mirrors pt_match_state's separate `ac`
// and `qa` fields): actionSnapshot is the truncation point a backtrack point
// (Quantifier/Choice/Not) rewinds the action stack to when it gives up,
// and is advanced after every child success so an already-completed
// iteration/element isn't lost to a later sibling's failure; queuedAt is
// fixed at push time and is the only correct base for this frame's OWN
// action's argc once the frame itself completes — using the advanced
// actionSnapshot there would always yield argc == 0.
type frame struct {
	expr           *Expression
	pos            int
	r1, r2         int
	done           bool // Quantifier only: true once an iteration attempt has failed
	actionSnapshot int
	queuedAt       int
}

// queuedAction is one entry of the action stack (spec.md §3.4): it records
// enough to invoke an ExpressionAction later, during the fold, without
// needing to keep the frame that produced it alive.
type queuedAction struct {
	action     ExpressionAction
	start, end int
	argc       int
}

// StateStackView is a read-only view of the engine's state stack, handed to
// callbacks. Callbacks must not mutate engine state; this type exposes no
// mutators.
type StateStackView struct {
	states []frame
}

// Len reports the number of active frames.
func (v StateStackView) Len() int { return len(v.states) }

// Pos reports the input position of frame i (0 is the bottom of the stack).
func (v StateStackView) Pos(i int) int { return v.states[i].pos }

// Op reports the operator of frame i.
func (v StateStackView) Op(i int) Op { return v.states[i].expr.Op }

// ActionStackView is a read-only view of the engine's action stack.
type ActionStackView struct {
	actions []queuedAction
}

// Len reports the number of queued actions.
func (v ActionStackView) Len() int { return len(v.actions) }

// Span reports the [start, end) byte range of queued action i.
func (v ActionStackView) Span(i int) (start, end int) {
	a := v.actions[i]
	return a.start, a.end
}

// engine drives a single Match attempt. It owns a state stack and an
// action stack and never recurses on the Go call stack — all PEG recursion
// (NonTerminal, Quantifier iteration, Sequence/Choice exploration) is
// explicit, pushed onto states, per spec.md §4.3.1.
type engine struct {
	grammar *Grammar
	input   []byte
	opts    *Options

	states  []frame
	actions []queuedAction

	errorSeen     bool
	errorRecorded bool
	errorCode     int
}

// Match drives grammar's start rule over input and returns the result.
// grammar must have passed Validate; behavior is undefined otherwise
// (spec.md §4.2). opts may be nil, meaning DefaultOptions().
func Match(grammar *Grammar, input []byte, opts *Options) Result {
	if input == nil {
		return Result{Matched: NullInput}
	}
	if grammar == nil || grammar.RuleCount() == 0 || grammar.exprs[0] == nil {
		return Result{Matched: NoMatch}
	}
	return runMatch(grammar, grammar.exprs[0], input, opts)
}

// MatchExpression matches a single, unnamed Expression against input — a
// convenience form for simple pattern matching without a Grammar (spec.md
// §6.1's match_single_expression). A NonTerminal inside e cannot resolve
// without a grammar and will panic, same as the caveat the original C
// library documents for pt_match_expr with a NULL names array.
func MatchExpression(e *Expression, input []byte, opts *Options) Result {
	if input == nil {
		return Result{Matched: NullInput}
	}
	if e == nil {
		return Result{Matched: NoMatch}
	}
	return runMatch(nil, e, input, opts)
}

func runMatch(grammar *Grammar, start *Expression, input []byte, opts *Options) Result {
	if opts == nil {
		d := DefaultOptions()
		opts = &d
	}
	cap := opts.InitialStackCapacity
	if cap <= 0 {
		cap = DefaultInitialStackCapacity
	}

	e := &engine{
		grammar: grammar,
		input:   input,
		opts:    opts,
		states:  make([]frame, 0, cap),
		actions: make([]queuedAction, 0, cap*8),
	}
	e.pushFrame(start, 0, 0)

	finalMatched := e.run()

	var result Result
	switch {
	case e.errorSeen:
		result.Matched = MatchedError
		result.Data = e.errorCode
	case finalMatched >= 0:
		result.Matched = MatchCode(finalMatched)
		if len(e.actions) > 0 {
			result.Data = runActions(e.actions, input, opts.Userdata)
		}
	default:
		result.Matched = MatchCode(finalMatched)
	}

	if opts.OnEnd != nil {
		opts.OnEnd(e.stateView(), e.actionView(), input, result, opts.Userdata)
	}
	return result
}

func (e *engine) stateView() StateStackView   { return StateStackView{e.states} }
func (e *engine) actionView() ActionStackView { return ActionStackView{e.actions} }

func (e *engine) pushFrame(expr *Expression, pos, actionSnapshot int) {
	e.states = append(e.states, frame{expr: expr, pos: pos, actionSnapshot: actionSnapshot, queuedAt: actionSnapshot})
}

// at returns the byte at pos, or the sentinel 0 at or past the end of
// input — the engine's only notion of "end of stream" (spec.md §6.3).
func (e *engine) at(pos int) byte {
	if pos < 0 || pos >= len(e.input) {
		return 0
	}
	return e.input[pos]
}

func (e *engine) hasPrefix(pos int, s []byte) bool {
	if pos < 0 || pos+len(s) > len(e.input) {
		return false
	}
	return bytes.Equal(e.input[pos:pos+len(s)], s)
}

func (e *engine) hasPrefixFold(pos int, s []byte) bool {
	if pos < 0 || pos+len(s) > len(e.input) {
		return false
	}
	for i, c := range s {
		b := e.input[pos+i]
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if b != c {
			return false
		}
	}
	return true
}

func containsByte(set []byte, b byte) bool {
	return bytes.IndexByte(set, b) >= 0
}

// run drives the dispatch loop until the state stack empties, returning the
// final matched byte count, or a negative MatchCode. It is the Go
// transliteration of pt_match's main loop in
// original_source/src/match.c, generalized to the tagged Expression model
// (the teacher's equivalent loop is context.match() in hucsmn-peg/context.go,
// driving an interface-per-node Pattern instead of a switch over Op).
func (e *engine) run() int {
	for len(e.states) > 0 {
		if e.opts.OnIteration != nil {
			e.opts.OnIteration(e.stateView(), e.actionView(), e.input, e.opts.Userdata)
		}

		top := &e.states[len(e.states)-1]
		pushed, isError, matched := e.dispatch(top)
		if pushed {
			continue
		}
		if isError {
			if stop := e.raiseError(top); stop {
				return int(MatchedError)
			}
			continue
		}
		if matched == int(NoMatch) {
			if !e.backtrackFail() {
				return int(NoMatch)
			}
			continue
		}
		if done, total := e.succeed(matched); done {
			return total
		}
	}
	return int(NoMatch)
}

// dispatch inspects the top frame's operator and either pushes a child
// frame (pushed == true, caller should re-loop), flags a syntactic error
// (isError == true), or computes a terminal matched count — a non-negative
// consumption, or NoMatch.
func (e *engine) dispatch(top *frame) (pushed bool, isError bool, matched int) {
	expr := top.expr

	switch expr.Op {
	case OpByte:
		if b := e.at(top.pos); b != 0 && b == expr.Byte {
			return false, false, 1
		}
		return false, false, int(NoMatch)

	case OpLiteral:
		if e.hasPrefix(top.pos, expr.Bytes) {
			return false, false, len(expr.Bytes)
		}
		return false, false, int(NoMatch)

	case OpCaseInsensitive:
		if e.hasPrefixFold(top.pos, expr.Bytes) {
			return false, false, len(expr.Bytes)
		}
		return false, false, int(NoMatch)

	case OpCharacterClass:
		if b := e.at(top.pos); b != 0 && expr.Class.test(b) {
			return false, false, 1
		}
		return false, false, int(NoMatch)

	case OpSet:
		if b := e.at(top.pos); b != 0 && containsByte(expr.Bytes, b) {
			return false, false, 1
		}
		return false, false, int(NoMatch)

	case OpRange:
		if b := e.at(top.pos); b != 0 && b >= expr.Lo && b <= expr.Hi {
			return false, false, 1
		}
		return false, false, int(NoMatch)

	case OpAny:
		if e.at(top.pos) != 0 {
			return false, false, 1
		}
		return false, false, int(NoMatch)

	case OpCustomMatcher:
		start := top.pos
		if start > len(e.input) {
			start = len(e.input)
		}
		n := expr.Matcher(e.input[start:], e.opts.Userdata)
		if n > 0 {
			return false, false, n
		}
		return false, false, int(NoMatch)

	case OpNonTerminal:
		if e.grammar == nil {
			panic(errNilGrammar)
		}
		target := e.grammar.RuleExpr(expr.Index)
		e.pushFrame(target, top.pos, len(e.actions))
		return true, false, 0

	case OpQuantifier:
		return e.dispatchQuantifier(top)

	case OpSequence:
		if top.r1 < len(expr.Children) {
			idx := top.r1
			top.r1 = idx + 1
			e.pushFrame(expr.Children[idx], top.pos+top.r2, len(e.actions))
			return true, false, 0
		}
		return false, false, top.r2

	case OpChoice:
		if top.r1 < len(expr.Children) {
			idx := top.r1
			top.r1 = idx + 1
			e.pushFrame(expr.Children[idx], top.pos, len(e.actions))
			return true, false, 0
		}
		return false, false, int(NoMatch)

	case OpAnd:
		e.pushFrame(expr.Child, top.pos, len(e.actions))
		return true, false, 0

	case OpNot:
		if top.r1 > 0 {
			return false, false, 0 // child failed: Not succeeds, consuming nothing
		}
		if top.r1 < 0 {
			return false, false, int(NoMatch) // child succeeded: Not fails
		}
		e.pushFrame(expr.Child, top.pos, len(e.actions))
		return true, false, 0

	case OpError:
		return false, true, 0

	default:
		panic(errUnknownOperator)
	}
}

// dispatchQuantifier implements Quantifier(e, N): N >= 0 means "at least N"
// (greedy, unbounded above); N < 0 means "at most |N|". r1 counts started
// iteration attempts (it is incremented before each child is pushed); r2 is
// the cumulative bytes consumed by the successful ones. done is set by
// backtrackFail once an iteration attempt has failed, at which point r1 is
// one more than the number of completed iterations.
func (e *engine) dispatchQuantifier(top *frame) (pushed bool, isError bool, matched int) {
	expr := top.expr

	if !top.done {
		if expr.N >= 0 {
			// Unbounded above: always try one more iteration.
			top.r1++
			e.pushFrame(expr.Child, top.pos+top.r2, len(e.actions))
			return true, false, 0
		}
		if top.r1 < -expr.N {
			top.r1++
			e.pushFrame(expr.Child, top.pos+top.r2, len(e.actions))
			return true, false, 0
		}
		// Upper bound reached without the last iteration failing.
		return false, false, top.r2
	}

	if expr.N >= 0 {
		// The failed final attempt already incremented r1 once past the
		// last real success, so the lower bound is met iff r1 > N (not >=).
		if top.r1 > expr.N {
			return false, false, top.r2
		}
		return false, false, int(NoMatch)
	}
	// N < 0 ("at most |N|") has no lower bound: failing early always succeeds.
	return false, false, top.r2
}

// succeed propagates a successful match of `matched` bytes for the current
// top frame up through its ancestors, per spec.md §4.3.3/§4.3.5. It is the
// transliteration of pt_match_succeed in original_source/src/match.c. It
// returns (true, total) once the whole match has succeeded (state stack
// exhausted), or (false, 0) once it has stopped at an ancestor that needs
// to be redispatched (a Quantifier/Sequence continuing, or a Not flipped to
// failure).
func (e *engine) succeed(matched int) (done bool, total int) {
	top := e.states[len(e.states)-1]
	newPos := top.pos + matched

	if e.opts.OnSuccessEach != nil {
		e.opts.OnSuccessEach(e.stateView(), e.actionView(), e.input, top.pos, newPos, e.opts.Userdata)
	}
	if top.expr.Action != nil {
		e.queueAction(top.expr.Action, top.pos, newPos, top.queuedAt)
	}

	for i := len(e.states) - 2; i >= 0; i-- {
		anc := &e.states[i]
		switch anc.expr.Op {
		case OpQuantifier, OpSequence:
			anc.r2 = newPos - anc.pos
			anc.actionSnapshot = len(e.actions)
			e.states = e.states[:i+1]
			return false, 0

		case OpAnd:
			newPos = anc.pos           // consumes nothing...
			e.actions = e.actions[:anc.actionSnapshot] // ...nor keeps queried actions
			if anc.expr.Action != nil {
				e.queueAction(anc.expr.Action, anc.pos, newPos, anc.queuedAt)
			}
			// transparent: keep climbing

		case OpNot:
			anc.r1 = -1 // child succeeded: Not now fails
			e.actions = e.actions[:anc.actionSnapshot]
			e.states = e.states[:i+1]
			return false, 0

		default: // NonTerminal, Choice, Error and terminals-as-ancestor: transparent
			if anc.expr.Action != nil {
				e.queueAction(anc.expr.Action, anc.pos, newPos, anc.queuedAt)
			}
		}
	}

	// No ancestor stopped the climb: the whole match succeeded.
	e.states = e.states[:0]
	return true, newPos
}

func (e *engine) queueAction(action ExpressionAction, start, end, snapshot int) {
	e.actions = append(e.actions, queuedAction{
		action: action,
		start:  start,
		end:    end,
		argc:   len(e.actions) - snapshot,
	})
}

// backtrackFail unwinds the state stack looking for a backtrack point
// (Quantifier or Choice, which retry with different internal state, or Not,
// which flips to success), truncating the action stack back to that
// frame's snapshot. It reports false if the whole state stack unwinds with
// no backtrack point found, meaning the overall match fails.
func (e *engine) backtrackFail() bool {
	if e.opts.OnFailEach != nil {
		e.opts.OnFailEach(e.stateView(), e.actionView(), e.input, e.opts.Userdata)
	}

	for i := len(e.states) - 2; i >= 0; i-- {
		anc := &e.states[i]
		switch anc.expr.Op {
		case OpQuantifier:
			anc.done = true
			e.states = e.states[:i+1]
			e.actions = e.actions[:anc.actionSnapshot]
			return true

		case OpChoice:
			e.states = e.states[:i+1]
			e.actions = e.actions[:anc.actionSnapshot]
			return true

		case OpNot:
			anc.r1 = 1 // child failed: Not now succeeds
			e.states = e.states[:i+1]
			e.actions = e.actions[:anc.actionSnapshot]
			return true

		default: // Sequence, And, NonTerminal, Error: transparent, propagate failure further
		}
	}

	e.states = e.states[:0]
	return false
}

// raiseError handles an Error expression firing (spec.md §4.3.2, §7): it
// records the (first) syntactic error code, invokes OnError, and — if the
// Error carries a sync expression — pushes a "(!sync any)*" frame on top of
// the Error frame (not replacing it) so matching continues transparently
// once the sync-skip completes; see SPEC_FULL.md §5.1 for why this is
// transparent rather than a hard stop. Without a sync expression, the whole
// match stops immediately: raiseError reports stop == true.
func (e *engine) raiseError(top *frame) (stop bool) {
	e.errorSeen = true
	if !e.errorRecorded {
		e.errorRecorded = true
		e.errorCode = top.expr.Code
	}
	if e.opts.OnError != nil {
		e.opts.OnError(e.input, top.pos, top.expr.Code, e.opts.Userdata)
	}

	if top.expr.Child == nil {
		e.states = e.states[:0]
		return true
	}

	e.pushFrame(buildSyncSkip(top.expr.Child), top.pos, len(e.actions))
	return false
}

// buildSyncSkip builds the ephemeral "(!sync any)*" expression used to
// resynchronize after a syntactic error, ported from the BUT_NO/Q macros in
// original_source/include/pega-texto/macro-on.h. The Not node borrows sync
// (its OwnChildren is false) since the Grammar already owns it; the
// Sequence and Quantifier nodes own the ephemeral nodes built here.
func buildSyncSkip(sync *Expression) *Expression {
	notSync := NewNot(sync, false, nil)
	any := NewAny(nil)
	seq := NewSequence([]*Expression{notSync, any}, true, nil)
	return NewQuantifier(seq, 0, true, nil)
}
