package pego

// DefaultInitialStackCapacity is used when Options.InitialStackCapacity is
// not positive (spec.md §5: "default 8 frames / 64 actions" — a single
// capacity value seeds both stacks, as in the teacher's defaultConfig).
const DefaultInitialStackCapacity = 8

// IterationFunc observes the engine before each dispatch step. It must not
// mutate the engine; it receives const views of both stacks for
// instrumentation (e.g. cooperative cancellation, tracing).
type IterationFunc func(states StateStackView, actions ActionStackView, input []byte, userdata interface{})

// SuccessFunc observes any frame succeeding, not only the top-level match.
type SuccessFunc func(states StateStackView, actions ActionStackView, input []byte, start, end int, userdata interface{})

// FailFunc observes any frame failing.
type FailFunc func(states StateStackView, actions ActionStackView, input []byte, userdata interface{})

// ErrorFunc observes an Error expression firing.
type ErrorFunc func(input []byte, position, code int, userdata interface{})

// EndFunc observes the match ending, exactly once, with the final Result.
type EndFunc func(states StateStackView, actions ActionStackView, input []byte, result Result, userdata interface{})

// Options configures a Match call (spec.md §3.3). All callbacks are
// optional; the zero value is usable (DefaultOptions documents it).
type Options struct {
	Userdata interface{}

	OnIteration   IterationFunc
	OnSuccessEach SuccessFunc
	OnFailEach    FailFunc
	OnError       ErrorFunc
	OnEnd         EndFunc

	// InitialStackCapacity seeds both the state stack and the action
	// stack; non-positive means DefaultInitialStackCapacity.
	InitialStackCapacity int
}

// DefaultOptions returns the zero-valued Options: no callbacks, default
// stack capacity. Mirrors pt_default_match_options / the teacher's
// defaultConfig.
func DefaultOptions() Options {
	return Options{}
}

// Result is the outcome of a Match call (spec.md §3.3).
type Result struct {
	// Matched is the number of bytes consumed on success, or one of the
	// negative MatchCode kinds on failure.
	Matched MatchCode
	// Data is the fold of queued action values, or the first syntactic
	// error code if Matched == MatchedError, or nil.
	Data interface{}
}

// Ok reports whether the match succeeded without any syntactic error
// firing. MatchedError is false here even though the grammar may have run
// to completion and consumed the whole input — once any Error expression
// fires, Result.Matched is forced to MatchedError regardless of the
// underlying run's outcome (spec.md §6.4), and Result.Data carries the
// first recorded error code instead of a folded action value.
func (r Result) Ok() bool {
	return r.Matched >= 0
}
