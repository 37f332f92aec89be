package scheduler

// SlotCapacity is the fixed size of each half-day block, in hours.
const SlotCapacity = 4

// fillDay allocates the morning and afternoon blocks of one business day
// and settles the ledger for both.
//
// The morning always goes to the primary subject. The afternoon repeats
// the primary while it has hours left; when the primary finishes exactly
// at the morning boundary, the afternoon switches to whichever other
// subject holds the most hours. A switched-in subject that is still
// unfinished after the afternoon is returned as the carry candidate: it
// pre-empts tomorrow's morning so a block started in the afternoon runs
// uninterrupted into the next day.
func fillDay(ledger *Ledger, primary Subject, offPreference bool) (morning, afternoon SlotAssignment, carry *Subject) {
	hours := min(SlotCapacity, ledger.Remaining(primary.Code))
	ledger.Consume(primary.Code, hours)
	morning = newAssignment(primary, hours, offPreference)

	if rem := ledger.Remaining(primary.Code); rem > 0 {
		next := min(SlotCapacity, rem)
		ledger.Consume(primary.Code, next)
		afternoon = newAssignment(primary, next, offPreference)
		return morning, afternoon, nil
	}

	replacement, ok := ledger.MostRemaining(map[string]struct{}{primary.Code: {}})
	if !ok {
		return morning, SlotAssignment{}, nil
	}
	next := min(SlotCapacity, ledger.Remaining(replacement.Code))
	ledger.Consume(replacement.Code, next)
	// The replacement ignores weekday and parity rules, so its blocks are
	// flagged the same way resolver fallbacks are.
	afternoon = newAssignment(replacement, next, true)
	if ledger.Remaining(replacement.Code) > 0 {
		carry = &replacement
	}
	return morning, afternoon, carry
}
