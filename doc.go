// Package pego implements a byte-oriented Parsing Expression Grammar (PEG)
// matching engine: given a Grammar (a set of named rules built from
// Expression combinators) and an input byte slice, it determines whether
// the input matches the grammar's start rule, how many bytes were consumed,
// folds user-defined semantic actions over the captured structure, and
// reports syntactic errors at designated points.
//
// Overview of the pipeline
//
// Expressions are built with the New* constructors below and combined into
// a Grammar with NewGrammar. Before matching, a Grammar must pass Validate,
// which resolves NonTerminal names to rule indices and rejects ill-formed
// grammars (nullable loop bodies, nullable Error sync expressions, dangling
// references, bad ranges, nil payloads). Left recursion is not detected:
// a left-recursive grammar passes Validate. Match then drives the grammar
// over an input buffer with an explicit backtracking stack — no packrat
// memoization, no native recursion, no Unicode-aware classes.
//
// This package is meant to be embedded: it consumes a Grammar, an input
// byte sequence and an Options value, and reports a Result plus a sequence
// of action invocations. Building a grammar from a textual description,
// compiling it to bytecode, or driving it from a CLI are all out of scope.
package pego
