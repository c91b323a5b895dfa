// Package pegutil provides builder ergonomics on top of pego's Expression
// constructors: character-class shorthands, quantifier shorthands, and a
// handful of ready-made literals (decimal/hex integers, identifiers,
// whitespace runs). It plays the same supporting role for pego that the
// teacher's own pegutil package played for its rune-based combinator API,
// adapted to pego's byte-oriented, C-locale-class model.
package pegutil // import "github.com/hucsmn/pego/pegutil"

import "github.com/hucsmn/pego"

// Digit builds a single decimal-digit Expression.
func Digit() *pego.Expression { return pego.NewCharacterClass(pego.ClassDigit, nil) }

// HexDigit builds a single hexadecimal-digit Expression.
func HexDigit() *pego.Expression { return pego.NewCharacterClass(pego.ClassXdigit, nil) }

// Alpha builds a single letter Expression.
func Alpha() *pego.Expression { return pego.NewCharacterClass(pego.ClassAlpha, nil) }

// AlphaNumeric builds a single letter-or-digit Expression.
func AlphaNumeric() *pego.Expression { return pego.NewCharacterClass(pego.ClassAlnum, nil) }

// Space builds a single whitespace-byte Expression.
func Space() *pego.Expression { return pego.NewCharacterClass(pego.ClassSpace, nil) }

// Upper builds a single uppercase-letter Expression.
func Upper() *pego.Expression { return pego.NewCharacterClass(pego.ClassUpper, nil) }

// Lower builds a single lowercase-letter Expression.
func Lower() *pego.Expression { return pego.NewCharacterClass(pego.ClassLower, nil) }

// Punct builds a single punctuation-byte Expression.
func Punct() *pego.Expression { return pego.NewCharacterClass(pego.ClassPunct, nil) }

// Opt builds e?: at most one occurrence of e.
func Opt(e *pego.Expression) *pego.Expression { return pego.NewQuantifier(e, -1, false, nil) }

// Star builds e*: zero or more occurrences of e. e must not be nullable
// (pego.Validate rejects a Kleene star over a nullable body).
func Star(e *pego.Expression) *pego.Expression { return pego.NewQuantifier(e, 0, false, nil) }

// Plus builds e+: one or more occurrences of e.
func Plus(e *pego.Expression) *pego.Expression { return pego.NewQuantifier(e, 1, false, nil) }

// Seq is a variadic-friendly wrapper over pego.NewSequence.
func Seq(es ...*pego.Expression) *pego.Expression { return pego.NewSequence(es, false, nil) }

// Alt is a variadic-friendly wrapper over pego.NewChoice.
func Alt(es ...*pego.Expression) *pego.Expression { return pego.NewChoice(es, false, nil) }

// Lit builds a literal byte-string match. s is copied into a new []byte
// owned by the returned Expression.
func Lit(s string) *pego.Expression {
	return pego.NewLiteral([]byte(s), true, nil)
}

// CI builds a case-insensitive (ASCII) literal byte-string match.
func CI(s string) *pego.Expression {
	return pego.NewCaseInsensitive([]byte(s), true, nil)
}

// Sign builds an optional leading '+' or '-'.
func Sign() *pego.Expression {
	return Opt(pego.NewSet([]byte("+-"), true, nil))
}

// DecInteger builds a decimal integer literal: an optional sign followed by
// one or more decimal digits.
func DecInteger() *pego.Expression {
	return Seq(Sign(), Plus(Digit()))
}

// HexInteger builds a "0x"/"0X"-prefixed hexadecimal integer literal.
func HexInteger() *pego.Expression {
	return Seq(Alt(Lit("0x"), Lit("0X")), Plus(HexDigit()))
}

// Identifier builds a C-style identifier: a letter or underscore, followed
// by zero or more letters, digits or underscores.
func Identifier() *pego.Expression {
	head := Alt(Alpha(), pego.NewByte('_', nil))
	tail := Star(Alt(AlphaNumeric(), pego.NewByte('_', nil)))
	return Seq(head, tail)
}

// Whitespace builds a run of one or more C-locale whitespace bytes.
func Whitespace() *pego.Expression {
	return Plus(Space())
}
