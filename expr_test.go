package pego

import "testing"

func TestOpString(t *testing.T) {
	if got := OpSequence.String(); got != "sequence" {
		t.Fatalf("OpSequence.String() = %q", got)
	}
	var bad Op = 255
	if got := bad.String(); got != "unknown" {
		t.Fatalf("Op(255).String() = %q, want %q", got, "unknown")
	}
}

func TestReleaseHonorsOwnership(t *testing.T) {
	borrowed := NewByte('x', nil)
	owned := NewLiteral([]byte("owned"), true, nil)
	seq := NewSequence([]*Expression{borrowed, owned}, true, nil)

	Release(seq)

	if owned.Bytes != nil {
		t.Fatalf("Release did not clear owned Bytes")
	}
	if seq.Children != nil {
		t.Fatalf("Release did not clear owned Children slice")
	}
	// borrowed is reachable only through seq.Children, already cleared above;
	// what matters is that Release never panics walking into it and that it
	// doesn't try to clear Bytes on a node that never owned any.
	if borrowed.Byte != 'x' {
		t.Fatalf("Release mutated a borrowed terminal's payload")
	}
}

func TestReleaseSkipsBorrowedChildren(t *testing.T) {
	shared := NewByte('y', nil)
	wrapper := NewAnd(shared, false, nil)

	Release(wrapper)

	if wrapper.Child != nil {
		t.Fatalf("Release should still unlink wrapper.Child even when borrowed")
	}
	if shared.Byte != 'y' {
		t.Fatalf("Release must not mutate a borrowed child's own fields")
	}
}

func TestNewNonTerminalNameStartsUnresolved(t *testing.T) {
	nt := NewNonTerminalName("Expr", nil)
	if nt.Index != -1 {
		t.Fatalf("NewNonTerminalName: Index = %d, want -1 before Validate", nt.Index)
	}
	if nt.Name != "Expr" {
		t.Fatalf("NewNonTerminalName: Name = %q, want %q", nt.Name, "Expr")
	}
}
