package scheduler

import "fmt"

// Ledger tracks remaining hours per subject during a single generation
// run. It is owned by exactly one Builder invocation and must not be
// shared or reused across runs.
type Ledger struct {
	subjects  []Subject
	remaining map[string]int
}

// NewLedger initializes every subject's balance to its total hours.
// Subject order is preserved: it breaks ties everywhere a "most
// remaining" query is answered.
func NewLedger(subjects []Subject) *Ledger {
	l := &Ledger{
		subjects:  make([]Subject, len(subjects)),
		remaining: make(map[string]int, len(subjects)),
	}
	copy(l.subjects, subjects)
	for _, s := range subjects {
		l.remaining[s.Code] = s.TotalHours
	}
	return l
}

// Remaining returns the unscheduled balance for a subject code.
func (l *Ledger) Remaining(code string) int {
	return l.remaining[code]
}

// Consume deducts amount hours from a subject's balance. Drawing more
// than the balance holds, or drawing on an unknown subject, is a caller
// defect and panics.
func (l *Ledger) Consume(code string, amount int) {
	rem, ok := l.remaining[code]
	if !ok {
		panic(fmt.Sprintf("scheduler: consume on unknown subject %q", code))
	}
	if amount <= 0 || amount > rem {
		panic(fmt.Sprintf("scheduler: consume %dh from subject %q with %dh remaining", amount, code, rem))
	}
	l.remaining[code] = rem - amount
}

// AnyRemaining reports whether any subject still has hours to place.
func (l *Ledger) AnyRemaining() bool {
	for _, rem := range l.remaining {
		if rem > 0 {
			return true
		}
	}
	return false
}

// MostRemaining returns the subject with the strictly largest remaining
// balance, skipping excluded codes. Ties resolve to the earliest
// registered subject. The second return is false when no candidate has
// hours left.
func (l *Ledger) MostRemaining(exclude map[string]struct{}) (Subject, bool) {
	var best Subject
	bestHours := 0
	found := false
	for _, s := range l.subjects {
		if _, skip := exclude[s.Code]; skip {
			continue
		}
		if rem := l.remaining[s.Code]; rem > bestHours {
			best = s
			bestHours = rem
			found = true
		}
	}
	return best, found
}

// Residual reports the subjects whose balances never reached zero.
// An empty map signals full success.
func (l *Ledger) Residual() map[string]int {
	residual := make(map[string]int)
	for _, s := range l.subjects {
		if rem := l.remaining[s.Code]; rem > 0 {
			residual[s.Code] = rem
		}
	}
	return residual
}
