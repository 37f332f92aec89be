package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerSubjects() []Subject {
	return []Subject{
		{Code: "PY", Name: "Python", TotalHours: 24},
		{Code: "SQL", Name: "Databases", TotalHours: 24},
		{Code: "ML", Name: "Machine Learning", TotalHours: 40},
	}
}

func TestLedgerInitAndConsume(t *testing.T) {
	l := NewLedger(ledgerSubjects())

	assert.Equal(t, 24, l.Remaining("PY"))
	assert.True(t, l.AnyRemaining())

	l.Consume("PY", 4)
	assert.Equal(t, 20, l.Remaining("PY"))

	l.Consume("PY", 20)
	assert.Equal(t, 0, l.Remaining("PY"))
	assert.True(t, l.AnyRemaining(), "other subjects still carry hours")
}

func TestLedgerConsumeOverdrawPanics(t *testing.T) {
	l := NewLedger(ledgerSubjects())

	assert.Panics(t, func() { l.Consume("PY", 25) })
	assert.Panics(t, func() { l.Consume("PY", 0) })
	assert.Panics(t, func() { l.Consume("NOPE", 1) })
}

func TestLedgerMostRemaining(t *testing.T) {
	l := NewLedger(ledgerSubjects())

	best, ok := l.MostRemaining(nil)
	require.True(t, ok)
	assert.Equal(t, "ML", best.Code)

	best, ok = l.MostRemaining(map[string]struct{}{"ML": {}})
	require.True(t, ok)
	assert.Equal(t, "PY", best.Code, "tie between PY and SQL resolves to registration order")

	l.Consume("PY", 24)
	l.Consume("SQL", 24)
	l.Consume("ML", 40)
	_, ok = l.MostRemaining(nil)
	assert.False(t, ok)
	assert.False(t, l.AnyRemaining())
}

func TestLedgerResidual(t *testing.T) {
	l := NewLedger(ledgerSubjects())
	l.Consume("PY", 24)
	l.Consume("ML", 30)

	assert.Equal(t, map[string]int{"SQL": 24, "ML": 10}, l.Residual())

	l.Consume("SQL", 24)
	l.Consume("ML", 10)
	assert.Empty(t, l.Residual())
}
