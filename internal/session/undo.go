package session

// Undo is an explicit compensating command returned by reversible
// operations. The caller may apply or discard it; applying can itself fail
// (the store may reject the write) and then surfaces its own error. Holding
// the command as a value instead of a hidden closure over UI state keeps
// compensation testable on its own.
type Undo struct {
	// Label describes the compensation in user terms.
	Label string

	apply func() error
}

// Apply executes the compensating write.
func (u *Undo) Apply() error {
	return u.apply()
}
