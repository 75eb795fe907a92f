package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketbank/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	return st
}

func seedUser(t *testing.T, st *Store, accountID string) *models.User {
	t.Helper()
	u := &models.User{
		AccountName: "User " + accountID,
		AccountID:   accountID,
		Password:    "hash",
		Email:       accountID + "@example.com",
		Phone:       "07" + accountID,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func seedCard(t *testing.T, st *Store, userID, number, balance string) *models.Card {
	t.Helper()
	c := &models.Card{
		UserID:        userID,
		Type:          models.CardDebit,
		Balance:       decimal.RequireFromString(balance),
		Holder:        "Holder",
		Number:        number,
		Expires:       "01/30",
		AccountNumber: number,
		ShortCode:     "11-22-33",
		Bank:          "Pocket Bank",
	}
	require.NoError(t, st.CreateCard(context.Background(), c))
	return c
}

func seedLeg(t *testing.T, st *Store, userID string, cardID *string, amount string, createdAt time.Time) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		UserID:             userID,
		CardID:             cardID,
		Type:               models.LegDebit,
		Amount:             decimal.RequireFromString(amount),
		Description:        "seed",
		SenderAccount:      "10000001",
		SenderShortCode:    "11-22-33",
		RecipientAccount:   "20000002",
		RecipientShortCode: "11-22-33",
		CreatedAt:          createdAt,
	}
	if tx.Amount.IsPositive() {
		tx.Type = models.LegCredit
	}
	require.NoError(t, st.CreateTransaction(context.Background(), tx))
	return tx
}

func TestUserLookups(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "10000001")

	byID, err := st.UserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.AccountID, byID.AccountID)

	byAcc, err := st.UserByAccountID(ctx, "10000001")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byAcc.ID)

	_, err = st.UserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.UserByAccountID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDebitCardGuard(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "10000001")
	c := seedCard(t, st, u.ID, "10000001", "100.00")

	ok, err := st.DebitCard(ctx, c.ID, decimal.RequireFromString("60"))
	require.NoError(t, err)
	assert.True(t, ok)

	// second debit would overdraw: the guard must reject without mutating
	ok, err = st.DebitCard(ctx, c.ID, decimal.RequireFromString("60"))
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := st.CardByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.RequireFromString("40")), "balance = %s", after.Balance)
}

func TestWithTxRollsBackAll(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "10000001")
	c := seedCard(t, st, u.ID, "10000001", "100.00")

	boom := assert.AnError
	err := st.WithTx(ctx, func(tx *Store) error {
		ok, err := tx.DebitCard(ctx, c.ID, decimal.NewFromInt(30))
		require.NoError(t, err)
		require.True(t, ok)
		seedLeg(t, tx, u.ID, &c.ID, "-30", time.Now())
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := st.CardByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, after.Balance.Equal(decimal.RequireFromString("100")))

	txs, err := st.TransactionsByUser(ctx, u.ID, TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestFriendsSortedByName(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "10000001")
	for _, name := range []string{"Zoe", "Adam", "Mia"} {
		require.NoError(t, st.CreateFriend(ctx, &models.Friend{
			UserID:        u.ID,
			Name:          name,
			AccountNumber: name + "-acc",
			ShortCode:     "11-22-33",
		}))
	}

	friends, err := st.FriendsByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, friends, 3)
	assert.Equal(t, "Adam", friends[0].Name)
	assert.Equal(t, "Mia", friends[1].Name)
	assert.Equal(t, "Zoe", friends[2].Name)
}

func TestTransactionFilters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "10000001")
	c1 := seedCard(t, st, u.ID, "10000001", "0")
	c2 := seedCard(t, st, u.ID, "10000002", "0")

	now := time.Now()
	seedLeg(t, st, u.ID, &c1.ID, "-10", now.AddDate(0, 0, -2))
	seedLeg(t, st, u.ID, &c1.ID, "25", now.AddDate(0, 0, -20))
	seedLeg(t, st, u.ID, &c2.ID, "-40", now.AddDate(-1, 0, -10))

	all, err := st.TransactionsByUser(ctx, u.ID, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
	assert.True(t, all[1].CreatedAt.After(all[2].CreatedAt))

	since := now.AddDate(0, 0, -7)
	lastWeek, err := st.TransactionsByUser(ctx, u.ID, TransactionFilter{Since: &since})
	require.NoError(t, err)
	require.Len(t, lastWeek, 1)
	assert.True(t, lastWeek[0].Amount.Equal(decimal.RequireFromString("-10")))

	moneyIn, err := st.TransactionsByUser(ctx, u.ID, TransactionFilter{Sign: 1})
	require.NoError(t, err)
	require.Len(t, moneyIn, 1)
	assert.True(t, moneyIn[0].Amount.IsPositive())

	moneyOut, err := st.TransactionsByUser(ctx, u.ID, TransactionFilter{Sign: -1})
	require.NoError(t, err)
	assert.Len(t, moneyOut, 2)

	byCard, err := st.TransactionsByUser(ctx, u.ID, TransactionFilter{CardID: c2.ID})
	require.NoError(t, err)
	require.Len(t, byCard, 1)
	assert.True(t, byCard[0].Amount.Equal(decimal.RequireFromString("-40")))
}

func TestTransactionListIsolatedByUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u1 := seedUser(t, st, "10000001")
	u2 := seedUser(t, st, "20000002")
	seedLeg(t, st, u1.ID, nil, "-10", time.Now())

	theirs, err := st.TransactionsByUser(ctx, u2.ID, TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestDeleteCardKeepsLegs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "10000001")
	c := seedCard(t, st, u.ID, "10000001", "0")
	seedLeg(t, st, u.ID, &c.ID, "-10", time.Now())

	require.NoError(t, st.DeleteCard(ctx, c.ID))
	_, err := st.CardByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the log keeps the dangling card reference
	txs, err := st.TransactionsByUser(ctx, u.ID, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.NotNil(t, txs[0].CardID)
	assert.Equal(t, c.ID, *txs[0].CardID)
}
