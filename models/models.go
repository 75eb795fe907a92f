package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a registered account holder
type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	AccountName string    `gorm:"not null" json:"accountName"`
	AccountID   string    `gorm:"uniqueIndex;not null" json:"accountId"`
	Password    string    `gorm:"not null" json:"-"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"uniqueIndex;not null" json:"phone"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// CardType is the kind of funding source a card represents
type CardType string

const (
	CardDebit  CardType = "debit"
	CardCredit CardType = "credit"
	CardOthers CardType = "others"
)

// ValidCardType reports whether t is one of the accepted card types.
func ValidCardType(t CardType) bool {
	return t == CardDebit || t == CardCredit || t == CardOthers
}

// Card represents a funding source owned by exactly one user.
// Balance is only ever written by the transfer orchestrator and the
// create path; there is no general update operation.
type Card struct {
	ID            string          `gorm:"primaryKey" json:"id"`
	UserID        string          `gorm:"index;not null" json:"userId"`
	Type          CardType        `gorm:"not null;default:debit" json:"type"`
	Balance       decimal.Decimal `gorm:"type:numeric;not null" json:"balance"`
	Holder        string          `gorm:"not null" json:"holder"`
	Number        string          `gorm:"uniqueIndex;not null" json:"number"`
	Expires       string          `gorm:"not null" json:"expires"` // MM/YY
	AccountNumber string          `gorm:"not null" json:"accountNumber"`
	ShortCode     string          `gorm:"not null" json:"shortCode"`
	Bank          string          `gorm:"not null" json:"bank"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Friend is a named payee in a user's personal address book. FriendUserID
// links to a registered user when the account number resolves to one; it is
// a weak reference and may dangle after that user is removed.
type Friend struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"index;not null" json:"userId"`
	FriendUserID  *string   `gorm:"index" json:"friendUserId,omitempty"`
	Name          string    `gorm:"not null" json:"name"`
	AccountNumber string    `gorm:"not null" json:"accountNumber"`
	ShortCode     string    `gorm:"not null" json:"shortCode"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (f *Friend) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// LegType marks which side of a money movement a transaction records.
// The sign of Amount is authoritative for direction; LegType mirrors it.
type LegType string

const (
	LegDebit  LegType = "debit"
	LegCredit LegType = "credit"
)

// Transaction is one immutable leg of a money movement. CardID and the
// recipient references are weak: a deleted card leaves them dangling and
// readers must tolerate that.
type Transaction struct {
	ID                 string          `gorm:"primaryKey" json:"id"`
	UserID             string          `gorm:"index;not null" json:"userId"`
	CardID             *string         `gorm:"index" json:"cardId,omitempty"`
	Type               LegType         `gorm:"not null" json:"type"`
	Amount             decimal.Decimal `gorm:"type:numeric;not null" json:"amount"` // negative for debit, positive for credit
	Description        string          `gorm:"not null" json:"description"`
	SenderAccount      string          `gorm:"not null" json:"senderAccount"`
	SenderShortCode    string          `gorm:"not null" json:"senderShortCode"`
	RecipientAccount   string          `gorm:"not null" json:"recipientAccount"`
	RecipientShortCode string          `gorm:"not null" json:"recipientShortCode"`
	RecipientUserID    *string         `json:"recipientUserId,omitempty"`
	RecipientCardID    *string         `json:"recipientCardId,omitempty"`
	CreatedAt          time.Time       `gorm:"index" json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
