package resolver

import "dcc/internal/resolved"

// variableScopes is a stack of name -> resolved type maps, pushed on entering a
// function body or nested block and popped on exit (spec.md §4.2). Innermost
// scope wins on lookup, giving block-scoped shadowing.
//
// This replaces the teacher's mutex-guarded linked-list util.Stack
// (src/util/stack.go) with a plain slice: §5 forbids locks in the core, and the
// resolver's traversal is single-threaded, so a slice is the direct sequential
// equivalent.
type variableScopes struct {
	frames []map[string]resolved.Type
}

func newVariableScopes() *variableScopes {
	return &variableScopes{}
}

func (s *variableScopes) push() {
	s.frames = append(s.frames, make(map[string]resolved.Type))
}

func (s *variableScopes) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *variableScopes) declare(name string, ty resolved.Type) {
	s.frames[len(s.frames)-1][name] = ty
}

// lookup searches innermost-first, so the most recently declared binding wins.
func (s *variableScopes) lookup(name string) (resolved.Type, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if ty, ok := s.frames[i][name]; ok {
			return ty, true
		}
	}
	return resolved.Type{}, false
}

// typeScopes binds generic parameter names to concrete types during
// monomorphization (spec.md §4.2).
type typeScopes struct {
	frames []map[string]resolved.Type
}

func newTypeScopes() *typeScopes {
	return &typeScopes{}
}

func (s *typeScopes) push(bindings map[string]resolved.Type) {
	s.frames = append(s.frames, bindings)
}

func (s *typeScopes) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *typeScopes) lookup(name string) (resolved.Type, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if ty, ok := s.frames[i][name]; ok {
			return ty, true
		}
	}
	return resolved.Type{}, false
}
