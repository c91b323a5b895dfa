package pego

// Rule is one named production of a Grammar.
type Rule struct {
	Name string
	Expr *Expression
}

// Grammar is an ordered collection of named rules (spec.md §3.2). Rule 0 is
// the start rule. Names and expressions are kept in parallel arrays so a
// rule can be addressed either by name (pre-validation NonTerminal
// references) or by position (post-validation, and for Match's own lookup
// of the start rule).
type Grammar struct {
	names    []string
	exprs    []*Expression
	ownNames bool

	// validated is set by Validate on success (or with ValidateSkip). Match
	// does not consult it: matching an unvalidated grammar is undefined.
	validated bool
}

// NewGrammar builds a Grammar from an ordered rule list; rules[0] becomes
// the start rule. Rule names must be unique; Validate does not check this,
// and resolves a NonTerminal reference to a duplicated name to the first
// rule with that name.
func NewGrammar(rules []Rule, ownNames bool) *Grammar {
	g := &Grammar{
		names:    make([]string, len(rules)),
		exprs:    make([]*Expression, len(rules)),
		ownNames: ownNames,
	}
	for i, r := range rules {
		g.names[i] = r.Name
		g.exprs[i] = r.Expr
	}
	return g
}

// RuleCount reports how many rules the grammar has.
func (g *Grammar) RuleCount() int {
	return len(g.exprs)
}

// RuleName returns the name of rule i.
func (g *Grammar) RuleName(i int) string {
	return g.names[i]
}

// RuleExpr returns the expression of rule i.
func (g *Grammar) RuleExpr(i int) *Expression {
	return g.exprs[i]
}

// IndexOf returns the rule index for name, or -1 if undefined.
func (g *Grammar) IndexOf(name string) int {
	for i, n := range g.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Release tears down every rule's expression tree (see Release), and clears
// the name array if the grammar owns it.
func (g *Grammar) Release() {
	for _, e := range g.exprs {
		Release(e)
	}
	g.exprs = nil
	if g.ownNames {
		g.names = nil
	}
}
