package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		acc, err := NewAccount("Jane Doe", 10000)
		require.NoError(t, err)
		require.NotNil(t, acc)

		assert.NotEqual(t, acc.ID.String(), "00000000-0000-0000-0000-000000000000")
		assert.Equal(t, "Jane Doe", acc.OwnerName)
		assert.Equal(t, int64(10000), acc.Balance)
		assert.Equal(t, 1, acc.Version)
		assert.Len(t, acc.AccountNumber, 9)
		assert.False(t, acc.CreatedAt.IsZero())
	})

	t.Run("ZeroOpeningBalance", func(t *testing.T) {
		acc, err := NewAccount("Jane Doe", 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), acc.Balance)
	})

	t.Run("EmptyOwnerName", func(t *testing.T) {
		acc, err := NewAccount("", 10000)
		assert.ErrorIs(t, err, ErrEmptyOwnerName)
		assert.Nil(t, acc)
	})

	t.Run("NegativeOpeningBalance", func(t *testing.T) {
		acc, err := NewAccount("Jane Doe", -1)
		assert.ErrorIs(t, err, ErrNegativeBalance)
		assert.Nil(t, acc)
	})
}

func TestAccount_Credit(t *testing.T) {
	acc, err := NewAccount("Jane Doe", 1000)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		err := acc.Credit(500)
		assert.NoError(t, err)
		assert.Equal(t, int64(1500), acc.Balance)
		assert.Equal(t, 2, acc.Version)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		balanceBefore := acc.Balance
		versionBefore := acc.Version

		assert.ErrorIs(t, acc.Credit(0), ErrInvalidAmount)
		assert.ErrorIs(t, acc.Credit(-100), ErrInvalidAmount)
		assert.Equal(t, balanceBefore, acc.Balance)
		assert.Equal(t, versionBefore, acc.Version)
	})
}

func TestAccount_Debit(t *testing.T) {
	acc, err := NewAccount("Jane Doe", 1000)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		err := acc.Debit(400)
		assert.NoError(t, err)
		assert.Equal(t, int64(600), acc.Balance)
		assert.Equal(t, 2, acc.Version)
	})

	t.Run("ExactBalance", func(t *testing.T) {
		err := acc.Debit(600)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), acc.Balance)
	})

	t.Run("InsufficientFunds", func(t *testing.T) {
		balanceBefore := acc.Balance
		err := acc.Debit(1)
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, balanceBefore, acc.Balance)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		assert.ErrorIs(t, acc.Debit(0), ErrInvalidAmount)
		assert.ErrorIs(t, acc.Debit(-5), ErrInvalidAmount)
	})
}

func TestAccount_CanDebit(t *testing.T) {
	acc, err := NewAccount("Jane Doe", 100)
	require.NoError(t, err)

	assert.True(t, acc.CanDebit(100))
	assert.True(t, acc.CanDebit(1))
	assert.False(t, acc.CanDebit(101))
}

func TestErrAccountNotFound_Is(t *testing.T) {
	acc, err := NewAccount("Jane Doe", 100)
	require.NoError(t, err)

	specific := ErrAccountNotFound{AccountID: acc.ID}
	other := ErrAccountNotFound{}

	assert.ErrorIs(t, specific, ErrAccountNotFound{})
	assert.ErrorIs(t, specific, ErrAccountNotFound{AccountID: acc.ID})
	assert.NotErrorIs(t, other, specific)
}
