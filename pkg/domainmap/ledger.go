package domainmap

// FreeSlot identifies a tombstoned slot.
type FreeSlot struct {
	Domain int `json:"domain" yaml:"domain"`
	Index  int `json:"index" yaml:"index"`
}

// ledger is a LIFO record of slots released by Remove. Slots are not reused;
// the record is kept for diagnostics.
type ledger struct {
	slots []FreeSlot
}

func (l *ledger) push(domain, index int) {
	l.slots = append(l.slots, FreeSlot{Domain: domain, Index: index})
}

func (l *ledger) len() int {
	return len(l.slots)
}

// snapshot returns the slots most recently released first.
func (l *ledger) snapshot() []FreeSlot {
	out := make([]FreeSlot, len(l.slots))
	for i, s := range l.slots {
		out[len(l.slots)-1-i] = s
	}
	return out
}

// peek returns the most recently released slot.
func (l *ledger) peek() (FreeSlot, bool) {
	if len(l.slots) == 0 {
		return FreeSlot{}, false
	}
	return l.slots[len(l.slots)-1], true
}

func (l *ledger) reset() {
	l.slots = nil
}
