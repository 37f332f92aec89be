package scheduler

import "time"

// resolvePrimary picks the subject that opens a business day.
//
// Primary candidates are subjects with hours left whose weekday pin is
// absent or matches the date, and whose biweekly parity (if any) matches
// the week index. Among candidates the largest remaining balance wins,
// ties going to registration order.
//
// When no candidate matches, placement rules are demoted to preferences:
// the subject with the most hours left anywhere in the ledger is chosen
// instead, so a pinned subject is never stranded because its weekday ran
// out of calendar room. The offPreference return marks that path.
//
// found is false only when every subject's balance is zero.
func resolvePrimary(ledger *Ledger, weekday time.Weekday, weekIndex int) (primary Subject, offPreference bool, found bool) {
	var best Subject
	bestHours := 0
	for _, s := range ledger.subjects {
		rem := ledger.remaining[s.Code]
		if rem == 0 {
			continue
		}
		if s.Weekday != nil && *s.Weekday != weekday {
			continue
		}
		if s.Biweekly && weekIndex%2 != s.WeekOffset {
			continue
		}
		if rem > bestHours {
			best = s
			bestHours = rem
			found = true
		}
	}
	if found {
		return best, false, true
	}

	if s, ok := ledger.MostRemaining(nil); ok {
		return s, true, true
	}
	return Subject{}, false, false
}
