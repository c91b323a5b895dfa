package pego

import "github.com/rs/zerolog"

// NewZerologTracer builds an IterationFunc/ErrorFunc pair that log engine
// progress through logger, for embedders who want execution tracing without
// hand-rolling one (spec.md §4.3.6/§6.2 leave diagnostics to Options'
// callbacks; the engine itself never logs). Wire the returned funcs into
// Options.OnIteration and Options.OnError.
//
// Iteration events log at debug level (they fire once per dispatch step,
// i.e. potentially many times per byte of input); error events log at warn
// level, since a syntactic error is noteworthy even when the grammar
// recovers via a sync expression.
func NewZerologTracer(logger zerolog.Logger) (onIteration IterationFunc, onError ErrorFunc) {
	onIteration = func(states StateStackView, actions ActionStackView, input []byte, userdata interface{}) {
		top := states.Len() - 1
		if top < 0 {
			return
		}
		logger.Debug().
			Int("depth", states.Len()).
			Str("op", states.Op(top).String()).
			Int("pos", states.Pos(top)).
			Int("actions", actions.Len()).
			Msg("pego: dispatch")
	}

	onError = func(input []byte, position, code int, userdata interface{}) {
		logger.Warn().
			Int("pos", position).
			Int("code", code).
			Msg("pego: syntax error")
	}

	return onIteration, onError
}
