package tree

// Propagate derives every directory's status from its immediate children,
// depth first. Leaves and childless directories keep their status.
func Propagate(n *Node) Status {
	if !n.IsDir || len(n.Children) == 0 {
		return n.Status
	}

	var different, leftOnly, rightOnly, same bool
	for _, c := range n.Children {
		switch Propagate(c) {
		case Different:
			different = true
		case LeftOnly:
			leftOnly = true
		case RightOnly:
			rightOnly = true
		case Same:
			same = true
		}
	}

	switch {
	case n.conflict:
		n.Status = Different
	case different,
		leftOnly && rightOnly,
		leftOnly && same,
		rightOnly && same:
		n.Status = Different
	case leftOnly:
		n.Status = LeftOnly
	case rightOnly:
		n.Status = RightOnly
	default:
		n.Status = Same
	}
	return n.Status
}
