package pego

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNullGrammar(t *testing.T) {
	result := Validate(nil, ValidateDefault)
	assert.Equal(t, ValidateNullGrammar, result.Status)
}

func TestValidateEmptyGrammar(t *testing.T) {
	g := NewGrammar(nil, false)
	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateEmptyGrammar, result.Status)
}

func TestValidateResolvesNonTerminalIndex(t *testing.T) {
	g := NewGrammar([]Rule{
		{Name: "Start", Expr: NewNonTerminalName("Digit", nil)},
		{Name: "Digit", Expr: NewCharacterClass(ClassDigit, nil)},
	}, false)

	result := Validate(g, ValidateDefault)
	require.Equal(t, ValidateSuccess, result.Status)
	assert.Equal(t, 1, g.exprs[0].Index)
	assert.True(t, g.validated)
}

func TestValidateUndefinedRule(t *testing.T) {
	g := NewGrammar([]Rule{
		{Name: "Start", Expr: NewNonTerminalName("Nope", nil)},
	}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateUndefinedRule, result.Status)
}

func TestValidateInvalidRange(t *testing.T) {
	g := NewGrammar([]Rule{
		{Name: "Start", Expr: NewRange('z', 'a', nil)},
	}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateInvalidRange, result.Status)
}

func TestValidateRejectsNullableKleeneStar(t *testing.T) {
	// (Digit*)* : the inner star can match zero bytes, so the outer star
	// would loop forever.
	inner := NewQuantifier(NewCharacterClass(ClassDigit, nil), 0, false, nil)
	outer := NewQuantifier(inner, 0, false, nil)
	g := NewGrammar([]Rule{{Name: "Start", Expr: outer}}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateLoopEmptyString, result.Status)
}

func TestValidateAcceptsNonNullableKleeneStar(t *testing.T) {
	star := NewQuantifier(NewCharacterClass(ClassDigit, nil), 0, false, nil)
	g := NewGrammar([]Rule{{Name: "Start", Expr: star}}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateSuccess, result.Status)
}

func TestValidateSkipBypassesChecks(t *testing.T) {
	g := NewGrammar([]Rule{
		{Name: "Start", Expr: NewRange('z', 'a', nil)},
	}, false)

	result := Validate(g, ValidateSkip)
	assert.Equal(t, ValidateSuccess, result.Status)
	assert.True(t, g.validated)
}

func TestValidateCatchesNestedInvalidRange(t *testing.T) {
	// The bad Range isn't the rule's root expression — it's nested inside a
	// Sequence. A cycle guard keyed only by rule number (and checked on
	// every node) would short-circuit this check once the rule's root had
	// been visited once.
	expr := NewSequence([]*Expression{
		NewLiteral([]byte("a"), true, nil),
		NewRange('z', 'a', nil),
	}, false, nil)
	g := NewGrammar([]Rule{{Name: "Start", Expr: expr}}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateInvalidRange, result.Status)
}

func TestValidateCatchesNestedNilPayload(t *testing.T) {
	expr := NewSequence([]*Expression{
		NewLiteral([]byte("a"), true, nil),
		NewLiteral(nil, true, nil),
	}, false, nil)
	g := NewGrammar([]Rule{{Name: "Start", Expr: expr}}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateNullPointer, result.Status)
}

func TestValidateCatchesNestedNullableLoopBody(t *testing.T) {
	// Start <- "a" (And(Digit))* : the Kleene star's body is nested inside
	// a Sequence, not the rule root, but it is still nullable (And never
	// consumes) and must be rejected the same as a root-level offender.
	body := NewAnd(NewCharacterClass(ClassDigit, nil), false, nil)
	star := NewQuantifier(body, 0, false, nil)
	expr := NewSequence([]*Expression{
		NewLiteral([]byte("a"), true, nil),
		star,
	}, false, nil)
	g := NewGrammar([]Rule{{Name: "Start", Expr: expr}}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateLoopEmptyString, result.Status)
}

func TestValidateChecksUnreachableRules(t *testing.T) {
	// "Dead" is never referenced from "Start", but pt_validate_grammar's
	// behavior (and this engine's) is to validate every rule, not just the
	// ones reachable from rule 0.
	g := NewGrammar([]Rule{
		{Name: "Start", Expr: NewLiteral([]byte("a"), true, nil)},
		{Name: "Dead", Expr: NewRange('z', 'a', nil)},
	}, false)

	result := Validate(g, ValidateDefault)
	assert.Equal(t, ValidateInvalidRange, result.Status)
	assert.Equal(t, 1, result.Rule)
}

func TestIsNullableGuardsSelfReferentialCycle(t *testing.T) {
	// Start <- Start ; a direct left-recursive self-reference. Without a
	// cycle guard, isNullable would recurse forever.
	g := NewGrammar([]Rule{
		{Name: "Start", Expr: NewNonTerminalName("Start", nil)},
	}, false)
	g.exprs[0].Index = 0 // pretend already resolved, as Validate would leave it

	done := make(chan bool, 1)
	go func() {
		done <- isNullable(g, g.exprs[0], make([]bool, len(g.exprs)))
	}()
	select {
	case nullable := <-done:
		assert.False(t, nullable)
	case <-time.After(time.Second):
		t.Fatal("isNullable did not terminate on a self-referential rule")
	}
}
