// Tests the lexer by verifying that a small dummyc function is tokenized
// into the expected sequence of items, types and source positions.
package frontend

import "testing"

// TestLexer tests the lexing state functions to verify that it correctly
// scans a sample dummyc function for tokens.
func TestLexer(t *testing.T) {
	src := "fn add(a:i32,b:i32):i32{\nreturn a+b;\n}\n"

	exp := []item{
		{typ: itemKeyword, val: "fn", line: 1, pos: 1},
		{typ: itemIdent, val: "add", line: 1, pos: 4},
		{typ: itemPunct, val: "(", line: 1, pos: 7},
		{typ: itemIdent, val: "a", line: 1, pos: 8},
		{typ: itemPunct, val: ":", line: 1, pos: 9},
		{typ: itemKeyword, val: "i32", line: 1, pos: 10},
		{typ: itemPunct, val: ",", line: 1, pos: 13},
		{typ: itemIdent, val: "b", line: 1, pos: 14},
		{typ: itemPunct, val: ":", line: 1, pos: 15},
		{typ: itemKeyword, val: "i32", line: 1, pos: 16},
		{typ: itemPunct, val: ")", line: 1, pos: 19},
		{typ: itemPunct, val: ":", line: 1, pos: 20},
		{typ: itemKeyword, val: "i32", line: 1, pos: 21},
		{typ: itemPunct, val: "{", line: 1, pos: 24},
		{typ: itemKeyword, val: "return", line: 2, pos: 1},
		{typ: itemIdent, val: "a", line: 2, pos: 8},
		{typ: itemPunct, val: "+", line: 2, pos: 9},
		{typ: itemIdent, val: "b", line: 2, pos: 10},
		{typ: itemPunct, val: ";", line: 2, pos: 11},
		{typ: itemPunct, val: "}", line: 3, pos: 1},
		{typ: itemEOF, line: 4, pos: 1},
	}

	l := newLexer(src, lexGlobal)
	l.run()

	if len(l.items) != len(exp) {
		t.Fatalf("expected %d tokens, got %d: %v", len(exp), len(l.items), l.items)
	}
	for i1, tok := range l.items {
		if tok.typ != exp[i1].typ || tok.val != exp[i1].val {
			t.Errorf("(token %d): expected %q, got %q", i1+1, exp[i1].val, tok.String())
		} else if tok.line != exp[i1].line || tok.pos != exp[i1].pos {
			t.Errorf("(token %d): expected %q to be on line %d:%d, got line %d:%d",
				i1+1, exp[i1].val, exp[i1].line, exp[i1].pos, tok.line, tok.pos)
		}
	}
}

// TestLexerUnclosedString verifies that an unterminated string literal
// produces an error item instead of running off the end of the input.
func TestLexerUnclosedString(t *testing.T) {
	l := newLexer(`"unterminated`, lexGlobal)
	l.run()

	if len(l.items) == 0 || l.items[len(l.items)-1].typ != itemError {
		t.Fatalf("expected a trailing itemError, got %v", l.items)
	}
}

// TestLexerMalformedNumber verifies that a digit run immediately followed by
// a letter is rejected rather than silently truncated.
func TestLexerMalformedNumber(t *testing.T) {
	l := newLexer("123abc", lexGlobal)
	l.run()

	if len(l.items) == 0 || l.items[len(l.items)-1].typ != itemError {
		t.Fatalf("expected a trailing itemError, got %v", l.items)
	}
}
