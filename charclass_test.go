package pego

import "testing"

func TestCharClassTest(t *testing.T) {
	cases := []struct {
		class CharClass
		yes   string
		no    string
	}{
		{ClassAlnum, "a1Z", " !\t"},
		{ClassAlpha, "aZ", "19 "},
		{ClassCntrl, "\t\n", "a "},
		{ClassDigit, "0123456789", "aZ "},
		{ClassGraph, "a!1", " \t\n"},
		{ClassLower, "abz", "ABZ19"},
		{ClassPunct, "!@#", "a1 "},
		{ClassSpace, " \t\n\r", "a1!"},
		{ClassUpper, "ABZ", "abz19"},
		{ClassXdigit, "09afAF", "gZ "},
	}
	for _, c := range cases {
		for i := 0; i < len(c.yes); i++ {
			if !c.class.test(c.yes[i]) {
				t.Errorf("%s: expected %q to belong to the class", c.class, c.yes[i])
			}
		}
		for i := 0; i < len(c.no); i++ {
			if c.class.test(c.no[i]) {
				t.Errorf("%s: expected %q to not belong to the class", c.class, c.no[i])
			}
		}
	}
}

func TestCharClassStringUnknown(t *testing.T) {
	var c CharClass = 255
	if got := c.String(); got != "unknown" {
		t.Fatalf("String() of out-of-range CharClass = %q, want %q", got, "unknown")
	}
}
