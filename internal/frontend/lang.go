package frontend

// rw contains the set of all reserved dummyc keywords and built-in type names.
// The index into the first dimension is the length of the word minus one; the
// second dimension is the slice of all words of that length. Indexing by length and searching should be
// faster than a hash table for a keyword set this small — the same idiom the
// teacher's frontend uses for VSL's reserved words.
var rw = [...][]string{
	// One-grams
	{},
	// Two-grams
	{"fn", "u8"},
	// Three-grams
	{"i32", "i64", "u32", "u64"},
	// Four-grams
	{"void"},
	// Five-grams
	{"usize"},
	// Six-grams
	{"return", "struct"},
}

// isKeyword reports whether s is a reserved dummyc word (keyword or built-in
// type name), which may not be used as an identifier.
func isKeyword(s string) bool {
	if len(s) == 0 || len(s) > len(rw) {
		return false
	}
	for _, w := range rw[len(s)-1] {
		if w == s {
			return true
		}
	}
	return false
}
