package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.99")
	require.NoError(t, err)
	assert.Equal(t, "99.99", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoneyRoundsToTwoPlaces(t *testing.T) {
	m := NewMoney(decimal.RequireFromString("10.005"))
	assert.Equal(t, "10.01", m.String())

	m = NewMoney(decimal.RequireFromString("10.004"))
	assert.Equal(t, "10.00", m.String())
}

func TestMoneyArithmetic(t *testing.T) {
	a, _ := NewMoneyFromString("99.99")
	b, _ := NewMoneyFromString("0.01")

	assert.Equal(t, "100.00", a.Add(b).String())
	assert.Equal(t, "99.98", a.Subtract(b).String())
	assert.Equal(t, "199.98", a.MultiplyInt(2).String())
	assert.Equal(t, "299.97", a.MultiplyInt(3).String())
}

func TestMoneyComparisons(t *testing.T) {
	a, _ := NewMoneyFromString("10.00")
	b, _ := NewMoneyFromString("10.0")
	c, _ := NewMoneyFromString("10.01")

	assert.True(t, a.Equals(b))
	assert.True(t, c.GreaterThan(a))
	assert.True(t, a.LessThan(c))
	assert.False(t, a.IsNegative())
	assert.True(t, ZeroMoney().IsZero())

	neg, _ := NewMoneyFromString("-1.50")
	assert.True(t, neg.IsNegative())
}

func TestMoneyStringAlwaysTwoPlaces(t *testing.T) {
	m, _ := NewMoneyFromString("5")
	assert.Equal(t, "5.00", m.String())
	assert.Equal(t, "0.00", ZeroMoney().String())
}
