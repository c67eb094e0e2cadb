package hover

// NodeAnchor is a plain Anchor for hosts that identify hovered nodes by
// key and bounding box. Identity is pointer identity: one hovered node,
// one *NodeAnchor value.
type NodeAnchor struct {
	// ID is the record name or URL the node references.
	ID string
	// Bounds is the node's box in viewport coordinates, used for
	// popover placement.
	Bounds Rect
}

func (a *NodeAnchor) Key() string { return a.ID }
