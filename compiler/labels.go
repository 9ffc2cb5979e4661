package compiler

// labelStack tracks jumps whose target is not known until the enclosing loop
// is finished. There is one scope per loop nesting level; breaks and
// continues each use their own stack.
type labelStack struct {
	scopes [][]int
}

// push opens a new scope on loop entry.
func (s *labelStack) push() {
	s.scopes = append(s.scopes, nil)
}

// record adds a pending jump to the innermost scope.
func (s *labelStack) record(index int) {
	top := len(s.scopes) - 1
	s.scopes[top] = append(s.scopes[top], index)
}

// patch points every jump in the innermost scope at target.
func (s *labelStack) patch(c *code, target int) {
	for _, index := range s.scopes[len(s.scopes)-1] {
		c.patchJump(index, target)
	}
}

// pop discards the innermost scope.
func (s *labelStack) pop() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *labelStack) depth() int {
	return len(s.scopes)
}
