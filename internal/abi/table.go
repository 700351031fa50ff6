package abi

// TypeTable maps original type strings to the descriptor that first claimed
// them. Iteration order is insertion order, which is also index order.
type TypeTable struct {
	keys    []string
	entries map[string]*TypeDescriptor
}

func NewTypeTable() *TypeTable {
	return &TypeTable{entries: make(map[string]*TypeDescriptor)}
}

func (t *TypeTable) Get(original string) (*TypeDescriptor, bool) {
	desc, ok := t.entries[original]
	return desc, ok
}

// Index returns the index assigned to original, or 0 when it is not in the table.
func (t *TypeTable) Index(original string) int {
	if desc, ok := t.entries[original]; ok {
		return desc.Index
	}
	return 0
}

func (t *TypeTable) insert(original string, desc *TypeDescriptor) {
	t.keys = append(t.keys, original)
	t.entries[original] = desc
}

func (t *TypeTable) Len() int {
	return len(t.keys)
}

// Keys returns the original type strings in index order.
func (t *TypeTable) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Entries returns the descriptors in index order.
func (t *TypeTable) Entries() []*TypeDescriptor {
	out := make([]*TypeDescriptor, 0, len(t.keys))
	for _, key := range t.keys {
		out = append(out, t.entries[key])
	}
	return out
}
