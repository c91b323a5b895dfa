package pego

// runActions folds the action stack left-to-right into a single value
// (spec.md §4.4, Component E). It is the Go transliteration of
// pt_run_actions in original_source/src/action.c: actions are queued during
// matching in left-to-right, bottom-up completion order (see
// engine.queueAction), and each one's argc records how many of the
// immediately preceding results on the data stack belong to it as
// arguments — exactly the nested children that survived backtracking
// beneath it.
//
// This is deliberately not the teacher's capture model: hucsmn-peg builds a
// nested capture tree eagerly as patterns match (capturing.go's begin/end
// bookkeeping) and lets callers walk it afterwards. Here the action stack
// is flat and the fold is a single deferred pass once the whole match (or
// MatchExpression) has finished, matching the original C library's
// action.c rather than the teacher's capture.go.
func runActions(actions []queuedAction, input []byte, userdata interface{}) interface{} {
	data := make([]interface{}, 0, len(actions))

	for _, a := range actions {
		var argv []interface{}
		if a.argc > 0 {
			from := len(data) - a.argc
			argv = append([]interface{}(nil), data[from:]...)
			data = data[:from]
		}
		data = append(data, a.action(input, a.start, a.end, argv, userdata))
	}

	if len(data) == 0 {
		return nil
	}
	// pt_run_actions returns data_stack[0]: if no single action wraps the
	// whole grammar, several root-level results can survive the fold
	// side by side, and the first one queued wins.
	return data[0]
}
