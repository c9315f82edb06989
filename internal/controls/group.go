package controls

// Group enforces mutual exclusion over a set of controls: delivering a
// selection through the group resets every other member first, so at
// most one switch in the group stays switched. The group owns the
// exclusion logic; member controls carry no reference back to it.
type Group struct {
	members []Control
}

// NewGroup creates a control group over the given members.
func NewGroup(members ...Control) *Group {
	return &Group{members: members}
}

// Contains reports whether c is a member of the group.
func (g *Group) Contains(c Control) bool {
	for _, m := range g.members {
		if m == c {
			return true
		}
	}
	return false
}

// Select resets every member except c, then delivers the selection to
// c. On a group whose only member is c this is plain OnSelect.
func (g *Group) Select(c Control) {
	for _, m := range g.members {
		if m != c {
			m.Reset()
		}
	}
	c.OnSelect()
}
