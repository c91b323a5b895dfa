package pego

import (
	"fmt"
	"os"
)

// ValidateBehavior controls what Validate does besides computing a result,
// mirroring pt_validate_behaviour from original_source/include/pega-texto/validate.h.
type ValidateBehavior uint8

const (
	// ValidateDefault just computes and returns the result.
	ValidateDefault ValidateBehavior = 0
	// ValidateSkip skips every check and marks the grammar validated. No
	// NonTerminal name is resolved and no nil payload is detected, so
	// name-based references stay unresolved.
	ValidateSkip ValidateBehavior = 1 << 0
	// ValidatePrintError prints a diagnostic to stderr on failure.
	ValidatePrintError ValidateBehavior = 1 << 1
	// ValidateAbort prints a diagnostic and calls os.Exit on failure.
	ValidateAbort ValidateBehavior = ValidatePrintError | 1<<2
)

// ValidateResult reports the outcome of Validate: a status code and, for
// any non-success status, the rule in which the problem was found.
type ValidateResult struct {
	Status ValidateStatus
	Rule   int
}

// Validate checks a grammar's well-formedness per Ford (2014) and resolves
// NonTerminal name references to rule indices in place (spec.md §4.2). It
// must be called, successfully, exactly once per grammar before Match is
// called concurrently from multiple goroutines; Match itself never
// mutates the grammar.
func Validate(g *Grammar, behavior ValidateBehavior) ValidateResult {
	if g == nil {
		return reportValidate(nil, ValidateResult{Status: ValidateNullGrammar}, behavior)
	}
	if len(g.exprs) == 0 {
		return reportValidate(g, ValidateResult{Status: ValidateEmptyGrammar}, behavior)
	}
	if behavior&ValidateSkip != 0 {
		g.validated = true
		return ValidateResult{Status: ValidateSuccess}
	}

	visited := make([]bool, len(g.exprs))
	for i := range g.exprs {
		if visited[i] {
			continue
		}
		visited[i] = true

		rule := i
		if status := validateExpr(g, g.exprs[i], &rule, visited); status != ValidateSuccess {
			return reportValidate(g, ValidateResult{Status: status, Rule: rule}, behavior)
		}
	}

	g.validated = true
	return reportValidate(g, ValidateResult{Status: ValidateSuccess}, behavior)
}

func reportValidate(g *Grammar, result ValidateResult, behavior ValidateBehavior) ValidateResult {
	if result.Status != ValidateSuccess && behavior&ValidatePrintError != 0 {
		name := "?"
		if g != nil && result.Rule < len(g.names) {
			name = g.names[result.Rule]
		}
		fmt.Fprintf(os.Stderr, "[pego.Validate] error on rule %q: %s\n", name, result.Status)
		if behavior == ValidateAbort {
			os.Exit(int(result.Status))
		}
	}
	return result
}

// validateExpr walks e (part of the rule currently identified by *rule),
// updating *rule as it follows NonTerminal references so any violation can
// be reported against the rule that actually triggers it. The visited guard
// is consulted only at the NonTerminal rule-entry boundary (below), not on
// every expression node: it exists solely to break infinite recursion
// through cyclic/self-referential NonTerminal references, not to skip
// re-checking sibling or nested expressions within the rule currently being
// walked.
func validateExpr(g *Grammar, e *Expression, rule *int, visited []bool) ValidateStatus {
	if e == nil {
		return ValidateNullPointer
	}

	switch e.Op {
	case OpRange:
		if e.Lo > e.Hi {
			return ValidateInvalidRange
		}

	case OpSet, OpLiteral, OpCaseInsensitive:
		if e.Bytes == nil {
			return ValidateNullPointer
		}
		if e.Op != OpSet && len(e.Bytes) == 0 {
			// Empty literal/case-insensitive strings are degenerate but
			// not ill-formed; treated like True elsewhere is a
			// construction-time concern, not a validation one.
		}

	case OpCustomMatcher:
		if e.Matcher == nil {
			return ValidateNullPointer
		}

	case OpNonTerminal:
		idx := e.Index
		if idx < 0 {
			idx = g.IndexOf(e.Name)
			if idx < 0 {
				return ValidateUndefinedRule
			}
			e.Index = idx
		} else if idx >= len(g.exprs) {
			return ValidateOutOfBounds
		}

		if visited[idx] {
			return ValidateSuccess
		}
		visited[idx] = true

		cur := *rule
		*rule = idx
		if status := validateExpr(g, g.exprs[idx], rule, visited); status != ValidateSuccess {
			return status
		}
		*rule = cur

	case OpQuantifier:
		if status := validateExpr(g, e.Child, rule, visited); status != ValidateSuccess {
			return status
		}
		if e.N == 0 {
			if isNullable(g, e.Child, make([]bool, len(g.exprs))) {
				return ValidateLoopEmptyString
			}
		}

	case OpAnd, OpNot:
		if status := validateExpr(g, e.Child, rule, visited); status != ValidateSuccess {
			return status
		}

	case OpSequence, OpChoice:
		for _, child := range e.Children {
			if status := validateExpr(g, child, rule, visited); status != ValidateSuccess {
				return status
			}
		}

	case OpError:
		if e.Child != nil {
			if status := validateExpr(g, e.Child, rule, visited); status != ValidateSuccess {
				return status
			}
			if isNullable(g, e.Child, make([]bool, len(g.exprs))) {
				return ValidateLoopEmptyString
			}
		}
	}

	return ValidateSuccess
}

// isNullable reports whether e can succeed while consuming zero bytes
// (spec.md §4.2). visiting guards NonTerminal cycles: a rule currently
// being evaluated is provisionally treated as non-nullable, so a
// self-referential rule like `A <- A` doesn't recurse forever (and is, by
// that convention, non-nullable unless some other alternative proves it
// otherwise).
func isNullable(g *Grammar, e *Expression, visiting []bool) bool {
	if e == nil {
		return false
	}
	switch e.Op {
	case OpAnd, OpNot:
		return true
	case OpQuantifier:
		return e.N <= 0
	case OpNonTerminal:
		idx := e.Index
		if idx < 0 || idx >= len(g.exprs) || visiting[idx] {
			return false
		}
		visiting[idx] = true
		nullable := isNullable(g, g.exprs[idx], visiting)
		visiting[idx] = false
		return nullable
	case OpSequence:
		for _, c := range e.Children {
			if !isNullable(g, c, visiting) {
				return false
			}
		}
		return true
	case OpChoice:
		for _, c := range e.Children {
			if isNullable(g, c, visiting) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
