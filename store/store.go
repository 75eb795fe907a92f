package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pocketbank/models"
)

// ErrNotFound is returned by every lookup that matches no document.
var ErrNotFound = errors.New("record not found")

// Store holds all persistence for users, cards, friends and transactions
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path and migrates the schema.
// Use "file::memory:?cache=shared" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.Friend{},
		&models.Transaction{},
	); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// New wraps an already-open gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithTx runs fn against a Store bound to a single database transaction.
// If fn returns an error every write inside it is rolled back.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- users ---

// CreateUser inserts a new user
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

// UserByID retrieves a user by document id
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// UserByAccountID retrieves a user by their unique account identifier
func (s *Store) UserByAccountID(ctx context.Context, accountID string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "account_id = ?", accountID).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// UpdateUserPassword replaces the stored password hash for a user
func (s *Store) UpdateUserPassword(ctx context.Context, userID, hash string) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", hash).Error
}

// --- cards ---

// CreateCard inserts a new card
func (s *Store) CreateCard(ctx context.Context, c *models.Card) error {
	return s.db.WithContext(ctx).Create(c).Error
}

// CardByID retrieves a card by document id
func (s *Store) CardByID(ctx context.Context, id string) (*models.Card, error) {
	var c models.Card
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// CardsByUser lists all cards owned by a user, oldest first
func (s *Store) CardsByUser(ctx context.Context, userID string) ([]models.Card, error) {
	var cards []models.Card
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&cards).Error
	return cards, err
}

// CardByUserAndNumber looks up a user's card with the given card number,
// used to reject duplicate card registration.
func (s *Store) CardByUserAndNumber(ctx context.Context, userID, number string) (*models.Card, error) {
	var c models.Card
	err := s.db.WithContext(ctx).
		First(&c, "user_id = ? AND number = ?", userID, number).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// FirstCardForUser returns the user's oldest card, the one that receives
// incoming friend transfers.
func (s *Store) FirstCardForUser(ctx context.Context, userID string) (*models.Card, error) {
	var c models.Card
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// DeleteCard removes a card by id. Transaction legs referencing it are kept.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Card{}, "id = ?", id).Error
}

// DebitCard decreases a card balance by amount, guarded so the balance can
// never go below zero even when two transfers race on the same card. The
// returned bool is false when the guard rejected the write.
func (s *Store) DebitCard(ctx context.Context, cardID string, amount decimal.Decimal) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Card{}).
		Where("id = ? AND balance >= ?", cardID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CreditCard increases a card balance by amount.
func (s *Store) CreditCard(ctx context.Context, cardID string, amount decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&models.Card{}).
		Where("id = ?", cardID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- friends ---

// CreateFriend inserts a new address-book entry
func (s *Store) CreateFriend(ctx context.Context, f *models.Friend) error {
	return s.db.WithContext(ctx).Create(f).Error
}

// FriendByID retrieves a friend entry by document id
func (s *Store) FriendByID(ctx context.Context, id string) (*models.Friend, error) {
	var f models.Friend
	if err := s.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// FriendsByUser lists a user's friends alphabetically by name
func (s *Store) FriendsByUser(ctx context.Context, userID string) ([]models.Friend, error) {
	var friends []models.Friend
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&friends).Error
	return friends, err
}

// FriendByDetails looks up a user's friend with the given account number and
// short code, used to reject duplicates.
func (s *Store) FriendByDetails(ctx context.Context, userID, accountNumber, shortCode string) (*models.Friend, error) {
	var f models.Friend
	err := s.db.WithContext(ctx).
		First(&f, "user_id = ? AND account_number = ? AND short_code = ?", userID, accountNumber, shortCode).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// DeleteFriend removes a friend entry by id
func (s *Store) DeleteFriend(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Friend{}, "id = ?", id).Error
}

// --- transactions ---

// CreateTransaction appends one immutable leg to the log
func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

// TransactionFilter narrows a transaction listing. Zero values mean "no
// filter". Sign +1 keeps credits (amount > 0), -1 keeps debits (amount < 0).
type TransactionFilter struct {
	CardID string
	Since  *time.Time
	Sign   int
}

// TransactionsByUser lists a user's transaction legs newest first, applying
// the optional card, date-window and direction filters.
func (s *Store) TransactionsByUser(ctx context.Context, userID string, f TransactionFilter) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.CardID != "" {
		q = q.Where("card_id = ?", f.CardID)
	}
	if f.Since != nil {
		q = q.Where("created_at >= ?", *f.Since)
	}
	switch {
	case f.Sign > 0:
		q = q.Where("amount > 0")
	case f.Sign < 0:
		q = q.Where("amount < 0")
	}
	var txs []models.Transaction
	err := q.Order("created_at desc").Find(&txs).Error
	return txs, err
}
