package calculation

import (
	"errors"
	"testing"

	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_EPIFullTerm(t *testing.T) {
	principal := n(1_000_000)
	payment, err := EPIPayment(principal, rate49, 360)
	require.NoError(t, err)

	sim, err := Simulate(principal, rate49, EPIPolicy{Payment: payment}, 360, true)
	require.NoError(t, err)

	assert.Equal(t, 360, sim.Periods)
	assert.InDelta(t, payment.Mul(n(360)).Sub(principal).InexactFloat64(), sim.TotalInterest.InexactFloat64(), 1e-4)
	assert.True(t, sim.FirstPayment.Equal(payment))
	require.Len(t, sim.Rows, 360)
	assert.True(t, sim.Rows[359].Balance.IsZero())
}

func TestSimulate_RowIdentity(t *testing.T) {
	for _, policy := range []PaymentPolicy{EPIPolicy{Payment: n(1200)}, EPPolicy{PrincipalPayment: n(900)}} {
		t.Run(policy.Name(), func(t *testing.T) {
			sim, err := Simulate(n(100_000), d("0.004"), policy, OpenEnded, true)
			require.NoError(t, err)
			require.NotEmpty(t, sim.Rows)

			balance := n(100_000)
			for i, row := range sim.Rows {
				assert.Equal(t, i+1, row.Period)
				assert.True(t, row.PrincipalPaid.Add(row.InterestPaid).Equal(row.Payment), "period %d", row.Period)
				assert.True(t, balance.Sub(row.PrincipalPaid).Equal(row.Balance), "period %d", row.Period)
				assert.False(t, row.Balance.IsNegative())
				balance = row.Balance
			}
			assert.True(t, sim.Rows[len(sim.Rows)-1].Balance.IsZero())
		})
	}
}

func TestSimulate_OpenEndedShortens(t *testing.T) {
	principal := n(1_000_000)
	payment, err := EPIPayment(principal, rate49, 360)
	require.NoError(t, err)
	remaining, err := EPIRemainingPrincipal(principal, rate49, 360, 60, payment)
	require.NoError(t, err)

	sim, err := Simulate(remaining.Sub(n(200_000)), rate49, EPIPolicy{Payment: payment}, OpenEnded, false)
	require.NoError(t, err)
	assert.Equal(t, 197, sim.Periods)
	assert.Equal(t, "327724.20", sim.TotalInterest.StringFixed(2))
	assert.Nil(t, sim.Rows)
}

func TestSimulate_EPNoPhantomPeriod(t *testing.T) {
	// 1140 repetitions of a rounded principal payment must not leave a residual
	// that opens an extra period.
	principal := n(2_500_000)
	p, err := EPPrincipalPayment(principal, 1200)
	require.NoError(t, err)

	sim, err := Simulate(principal.Sub(n(125_000)), rate49, EPPolicy{PrincipalPayment: p}, OpenEnded, true)
	require.NoError(t, err)
	assert.Equal(t, 1140, sim.Periods)
	last := sim.Rows[len(sim.Rows)-1]
	assert.True(t, last.Balance.IsZero())
	assert.Equal(t, "2083.33", last.PrincipalPaid.StringFixed(2))
}

func TestSimulate_CapRepaysRemainder(t *testing.T) {
	// A payment too small to finish in 12 periods: the last period clears the balance.
	sim, err := Simulate(n(12_000), decimal.Zero, EPIPolicy{Payment: n(500)}, 12, true)
	require.NoError(t, err)
	require.Len(t, sim.Rows, 12)
	last := sim.Rows[11]
	assert.Equal(t, "6500", last.PrincipalPaid.String())
	assert.Equal(t, "6500", last.Payment.String())
	assert.True(t, last.Balance.IsZero())
}

func TestSimulate_FinalPeriodCorrection(t *testing.T) {
	sim, err := Simulate(n(1000), decimal.Zero, EPPolicy{PrincipalPayment: n(300)}, OpenEnded, true)
	require.NoError(t, err)
	require.Len(t, sim.Rows, 4)
	assert.Equal(t, "100", sim.Rows[3].PrincipalPaid.String())
	assert.Equal(t, "300", sim.FirstPayment.String())
}

func TestSimulate_Errors(t *testing.T) {
	t.Run("payment below interest", func(t *testing.T) {
		_, err := Simulate(n(100_000), d("0.01"), EPIPolicy{Payment: n(500)}, OpenEnded, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrArithmetic))

		var ae *domain.ArithmeticError
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, 1, ae.Period)
		assert.Contains(t, err.Error(), "第 1 期")
	})

	t.Run("non-positive principal payment", func(t *testing.T) {
		_, err := Simulate(n(1000), d("0.01"), EPPolicy{PrincipalPayment: decimal.Zero}, 10, false)
		assert.True(t, errors.Is(err, domain.ErrArithmetic))
	})

	t.Run("never repaid", func(t *testing.T) {
		_, err := Simulate(n(1_000_000), decimal.Zero, EPIPolicy{Payment: n(1)}, OpenEnded, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrArithmetic))
		assert.Contains(t, err.Error(), "1200")
	})

	t.Run("negative cap", func(t *testing.T) {
		_, err := Simulate(n(1000), decimal.Zero, EPIPolicy{Payment: n(10)}, -1, false)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestSimulate_ZeroBalance(t *testing.T) {
	sim, err := Simulate(decimal.Zero, rate49, EPIPolicy{Payment: n(100)}, OpenEnded, true)
	require.NoError(t, err)
	assert.Equal(t, 0, sim.Periods)
	assert.True(t, sim.TotalInterest.IsZero())
	assert.Empty(t, sim.Rows)
}
