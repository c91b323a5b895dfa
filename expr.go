package pego

// Op tags the operator of an Expression.
type Op uint8

const (
	OpByte Op = iota
	OpLiteral
	OpCaseInsensitive
	OpCharacterClass
	OpSet
	OpRange
	OpAny
	OpNonTerminal
	OpQuantifier
	OpAnd
	OpNot
	OpSequence
	OpChoice
	OpCustomMatcher
	OpError
)

func (op Op) String() string {
	switch op {
	case OpByte:
		return "byte"
	case OpLiteral:
		return "literal"
	case OpCaseInsensitive:
		return "case-insensitive"
	case OpCharacterClass:
		return "character-class"
	case OpSet:
		return "set"
	case OpRange:
		return "range"
	case OpAny:
		return "any"
	case OpNonTerminal:
		return "non-terminal"
	case OpQuantifier:
		return "quantifier"
	case OpAnd:
		return "and"
	case OpNot:
		return "not"
	case OpSequence:
		return "sequence"
	case OpChoice:
		return "choice"
	case OpCustomMatcher:
		return "custom-matcher"
	case OpError:
		return "error"
	default:
		return "unknown"
	}
}

// CustomMatcherFunc consumes bytes from the front of data and reports how
// many bytes matched. A non-positive return means no match; the cursor is
// never advanced on failure.
type CustomMatcherFunc func(data []byte, userdata interface{}) int

// ExpressionAction is invoked during the fold (Component E), once per
// Expression activation that survives backtracking, in left-to-right,
// bottom-up order. argv holds the already-folded results of the nested
// actions beneath this one. It mirrors pt_expression_action from
// original_source/include/pega-texto/action.h, generalized from C's void*
// data union to interface{}.
type ExpressionAction func(input []byte, start, end int, argv []interface{}, userdata interface{}) interface{}

// Expression is a node of a Parsing Expression Grammar, described in
// spec.md §3.1. It is a tagged variant: Op selects which payload fields are
// meaningful. Expressions form a tree; the only way to introduce a cycle is
// through a NonTerminal, which references other rules in a Grammar by name
// (pre-validation) or index (post-validation) rather than by pointer.
type Expression struct {
	Op     Op
	Action ExpressionAction

	// Byte, CustomMatcher-free terminals.
	Byte byte

	// Literal, CaseInsensitive, Set payload. Range uses Lo/Hi instead.
	Bytes []byte

	// Range payload.
	Lo, Hi byte

	// CharacterClass payload.
	Class CharClass

	// NonTerminal payload: Name before validation, Index (>= 0) after.
	Name  string
	Index int

	// Quantifier payload: N >= 0 means "at least N"; N < 0 means "at most |N|".
	N int

	// Quantifier/And/Not child, or Error's optional sync expression.
	Child *Expression

	// Sequence/Choice children, in order.
	Children []*Expression

	// CustomMatcher payload.
	Matcher CustomMatcherFunc

	// Error payload: a caller-defined code, reported via Options.OnError
	// and carried in Result.Data when the overall match ends in
	// MatchedError.
	Code int

	// Ownership flags, honored by Release: whether this node should
	// recursively release its Bytes buffer and/or its Child/Children.
	OwnBytes    bool
	OwnChildren bool
}

// NewByte builds an Expression matching exactly the byte b. It fails at the
// sentinel byte 0, like every other terminal.
func NewByte(b byte, action ExpressionAction) *Expression {
	return &Expression{Op: OpByte, Byte: b, Action: action}
}

// NewLiteral builds an Expression matching the byte string s verbatim.
func NewLiteral(s []byte, ownBytes bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpLiteral, Bytes: s, OwnBytes: ownBytes, Action: action}
}

// NewCaseInsensitive builds an Expression matching s, ignoring ASCII case.
func NewCaseInsensitive(s []byte, ownBytes bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpCaseInsensitive, Bytes: s, OwnBytes: ownBytes, Action: action}
}

// NewCharacterClass builds an Expression matching one byte satisfying the
// given C-locale class predicate (see CharClass).
func NewCharacterClass(class CharClass, action ExpressionAction) *Expression {
	return &Expression{Op: OpCharacterClass, Class: class, Action: action}
}

// NewSet builds an Expression matching one byte that appears in s.
func NewSet(s []byte, ownBytes bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpSet, Bytes: s, OwnBytes: ownBytes, Action: action}
}

// NewRange builds an Expression matching one byte in [lo, hi]. lo must be
// <= hi (checked by Validate, not at construction time).
func NewRange(lo, hi byte, action ExpressionAction) *Expression {
	return &Expression{Op: OpRange, Lo: lo, Hi: hi, Action: action}
}

// NewAny builds an Expression matching any one byte, failing at the
// sentinel.
func NewAny(action ExpressionAction) *Expression {
	return &Expression{Op: OpAny, Action: action}
}

// NewNonTerminalName builds an Expression that recurses into the rule
// named name. The reference is resolved to a numeric index by Validate.
func NewNonTerminalName(name string, action ExpressionAction) *Expression {
	return &Expression{Op: OpNonTerminal, Name: name, Index: -1, Action: action}
}

// NewNonTerminalIndex builds an Expression that recurses into rule index,
// already resolved (for callers building grammars programmatically).
func NewNonTerminalIndex(index int, action ExpressionAction) *Expression {
	return &Expression{Op: OpNonTerminal, Index: index, Action: action}
}

// NewQuantifier builds an Expression repeating e. If n >= 0, e must match at
// least n times (greedy, unbounded above). If n < 0, e matches at most |n|
// times. n == 0 is Kleene star; it requires (via Validate) that e is not
// nullable, or it would loop forever matching nothing.
func NewQuantifier(e *Expression, n int, ownChild bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpQuantifier, Child: e, N: n, OwnChildren: ownChild, Action: action}
}

// NewAnd builds a lookahead Expression: succeeds iff e would match,
// consuming nothing.
func NewAnd(e *Expression, ownChild bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpAnd, Child: e, OwnChildren: ownChild, Action: action}
}

// NewNot builds a negative lookahead Expression: succeeds iff e would not
// match, consuming nothing.
func NewNot(e *Expression, ownChild bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpNot, Child: e, OwnChildren: ownChild, Action: action}
}

// NewSequence builds an Expression matching each child in order; an empty
// sequence always succeeds, consuming nothing.
func NewSequence(es []*Expression, ownChildren bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpSequence, Children: es, OwnChildren: ownChildren, Action: action}
}

// NewChoice builds an Expression matching the first alternative that
// matches, in order; an empty choice always fails.
func NewChoice(es []*Expression, ownChildren bool, action ExpressionAction) *Expression {
	return &Expression{Op: OpChoice, Children: es, OwnChildren: ownChildren, Action: action}
}

// NewCustomMatcher builds an Expression delegating to fn: it consumes
// fn's positive return value, or fails on a non-positive one.
func NewCustomMatcher(fn CustomMatcherFunc, action ExpressionAction) *Expression {
	return &Expression{Op: OpCustomMatcher, Matcher: fn, Action: action}
}

// NewError builds a syntactic-error Expression. sync, if non-nil, is tried
// as "(!sync any)*" to resynchronize the match after the error is recorded;
// without a sync expression, firing this Error stops the match immediately.
func NewError(code int, sync *Expression, ownSync bool) *Expression {
	return &Expression{Op: OpError, Code: code, Child: sync, OwnChildren: ownSync}
}

// Release recursively tears down e, honoring its ownership flags: owned
// buffers/children are unlinked so nothing keeps them reachable; borrowed
// (linked, not owned) children are left untouched, exactly as documented in
// spec.md §4.1. The Go garbage collector makes this a courtesy rather than
// a necessity — NonTerminal children are referenced by index, not pointer,
// so an Expression tree is never cyclic through raw pointers — but Release
// is provided to keep the constructor/destructor API symmetric for callers
// porting grammars from the original C library.
func Release(e *Expression) {
	if e == nil {
		return
	}
	if e.OwnBytes {
		e.Bytes = nil
	}
	if e.OwnChildren {
		Release(e.Child)
		for _, c := range e.Children {
			Release(c)
		}
	}
	e.Child = nil
	e.Children = nil
}
