package carousel

// Navigator is a bounded cursor over a sequence of known length.
// The zero value points at index 0 of an empty sequence.
type Navigator struct {
	index  int
	length int
}

// Resize sets the sequence length and clamps the index into range.
func (n *Navigator) Resize(length int) {
	if length < 0 {
		length = 0
	}
	n.length = length
	n.clamp()
}

// Prev moves one item towards the start. No-op at index 0.
func (n *Navigator) Prev() {
	n.index = max(0, n.index-1)
}

// Next moves one item towards the end. No-op at the last item or when empty.
func (n *Navigator) Next() {
	if n.length == 0 {
		return
	}
	n.index = min(n.length-1, n.index+1)
}

// Index returns the zero-based position.
func (n *Navigator) Index() int { return n.index }

// Len returns the sequence length the navigator was last sized to.
func (n *Navigator) Len() int { return n.length }

// CanPrev reports whether Prev would move.
func (n *Navigator) CanPrev() bool { return n.index > 0 }

// CanNext reports whether Next would move.
func (n *Navigator) CanNext() bool { return n.length > 0 && n.index < n.length-1 }

func (n *Navigator) clamp() {
	if n.length == 0 {
		n.index = 0
		return
	}
	n.index = min(max(n.index, 0), n.length-1)
}
