package view

// None marks a panel without a selected row.
const None = -1

// Selection tracks the active panel and one cursor per panel. Cursors index
// into the panels' row lists, whose lengths are passed to every operation.
type Selection struct {
	Active int
	Index  [2]int
}

// NewSelection selects the first row of the left panel.
func NewSelection(lens [2]int) Selection {
	s := Selection{Index: [2]int{None, None}}
	if lens[0] > 0 {
		s.Index[0] = 0
	}
	return s
}

// Selected returns the active panel's cursor, or false when nothing is selected.
func (s *Selection) Selected() (int, bool) {
	i := s.Index[s.Active]
	return i, i != None
}

// Move shifts the active cursor by delta, clamped to the active list, and
// mirrors the result onto the other panel clamped to its own length.
func (s *Selection) Move(delta int, lens [2]int) {
	n := lens[s.Active]
	if n == 0 {
		return
	}
	cur := s.Index[s.Active]
	if cur == None {
		cur = 0
	}
	next := min(max(cur+delta, 0), n-1)
	s.Index[s.Active] = next
	s.mirror(next, lens)
}

// First selects the first row of both panels.
func (s *Selection) First(lens [2]int) {
	if lens[s.Active] == 0 {
		return
	}
	s.Index[s.Active] = 0
	if other := 1 - s.Active; lens[other] > 0 {
		s.Index[other] = 0
	}
}

// Last selects the last row of both panels, each by its own length.
func (s *Selection) Last(lens [2]int) {
	if lens[s.Active] == 0 {
		return
	}
	s.Index[s.Active] = lens[s.Active] - 1
	if other := 1 - s.Active; lens[other] > 0 {
		s.Index[other] = lens[other] - 1
	}
}

// SwitchPanel makes p active, carrying the current index across clamped
// to p's list.
func (s *Selection) SwitchPanel(p int, lens [2]int) {
	if p == s.Active {
		return
	}
	if cur := s.Index[s.Active]; cur != None && lens[p] > 0 {
		s.Index[p] = min(cur, lens[p]-1)
	}
	s.Active = p
}

// Clamp keeps a saved cursor when it is still in range, falls back to the
// first row when the list is not empty, and clears it otherwise.
func Clamp(saved, n int) int {
	switch {
	case saved != None && saved < n:
		return saved
	case n > 0:
		return 0
	default:
		return None
	}
}

func (s *Selection) mirror(i int, lens [2]int) {
	other := 1 - s.Active
	if lens[other] > 0 {
		s.Index[other] = min(i, lens[other]-1)
	}
}
