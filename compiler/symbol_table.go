package compiler

// SymbolTable maps the variable names of one function to frame slots.
// Slots are handed out in insertion order starting at zero, so parameters
// inserted first occupy 0..arity-1.
type SymbolTable struct {
	slots map[string]int
	names []string
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{slots: map[string]int{}}
}

// Insert returns the slot for name, allocating the next free slot if the
// name has not been seen. The second result reports whether a slot was
// allocated.
func (t *SymbolTable) Insert(name string) (int, bool) {
	if slot, ok := t.slots[name]; ok {
		return slot, false
	}
	slot := len(t.names)
	t.slots[name] = slot
	t.names = append(t.names, name)
	return slot, true
}

// Resolve returns the slot for name.
func (t *SymbolTable) Resolve(name string) (int, bool) {
	slot, ok := t.slots[name]
	return slot, ok
}

// Count returns the number of slots in use.
func (t *SymbolTable) Count() int {
	return len(t.names)
}

// Names returns the variable names indexed by slot.
func (t *SymbolTable) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}
