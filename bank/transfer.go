package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"pocketbank/models"
	"pocketbank/store"
)

// TransferType selects how the destination of a transfer is resolved.
type TransferType string

const (
	TransferSelf    TransferType = "self"    // another card of the caller
	TransferFriends TransferType = "friends" // a payee from the caller's friend list
	TransferOthers  TransferType = "others"  // an external account, outgoing leg only
)

// TransferInput carries one transfer request. Which destination field is
// read depends on Type; the others are ignored.
type TransferInput struct {
	FromCardID        string
	Amount            decimal.Decimal
	Type              TransferType
	ToCardID          string // self
	FriendID          string // friends
	ExternalAccount   string // others
	ExternalShortCode string // others
}

// TransferResult is the post-commit snapshot returned to the caller.
// ToCard is nil for external transfers.
type TransferResult struct {
	FromCard         *models.Card
	ToCard           *models.Card
	DebitTransaction *models.Transaction
}

// Service executes transfers. It is the only writer of card balances and
// the only producer of transaction legs.
type Service struct {
	store *store.Store
}

func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// resolved destination details, derived server-side only
type recipient struct {
	toCard        *models.Card // nil when external
	userID        string       // empty when external
	accountNumber string
	shortCode     string
	debitDesc     string
	creditDesc    string
}

// Transfer moves Amount from one of the caller's cards to the destination
// selected by Type. Both balance writes and all log legs happen inside a
// single database transaction; on any error nothing is committed. The debit
// itself is a conditional write, so two concurrent transfers from the same
// card cannot overdraw it.
func (svc *Service) Transfer(ctx context.Context, caller *models.User, in TransferInput) (*TransferResult, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrBadAmount
	}

	var result *TransferResult
	err := svc.store.WithTx(ctx, func(tx *store.Store) error {
		fromCard, err := tx.CardByID(ctx, in.FromCardID)
		if err != nil {
			return err
		}
		if fromCard.UserID != caller.ID {
			// masked as not-found so card ids cannot be probed
			return store.ErrNotFound
		}
		if fromCard.Balance.LessThan(in.Amount) {
			return ErrInsufficientFunds
		}

		rcpt, err := svc.resolveRecipient(ctx, tx, caller, fromCard, in)
		if err != nil {
			return err
		}

		ok, err := tx.DebitCard(ctx, fromCard.ID, in.Amount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientFunds
		}
		if rcpt.toCard != nil {
			if err := tx.CreditCard(ctx, rcpt.toCard.ID, in.Amount); err != nil {
				return err
			}
		}

		debit := &models.Transaction{
			UserID:             caller.ID,
			CardID:             &fromCard.ID,
			Type:               models.LegDebit,
			Amount:             in.Amount.Neg(),
			Description:        rcpt.debitDesc,
			SenderAccount:      fromCard.AccountNumber,
			SenderShortCode:    fromCard.ShortCode,
			RecipientAccount:   rcpt.accountNumber,
			RecipientShortCode: rcpt.shortCode,
		}
		if rcpt.userID != "" {
			debit.RecipientUserID = &rcpt.userID
		}
		if rcpt.toCard != nil {
			debit.RecipientCardID = &rcpt.toCard.ID
		}
		if err := tx.CreateTransaction(ctx, debit); err != nil {
			return err
		}

		if rcpt.userID != "" {
			credit := &models.Transaction{
				UserID:             rcpt.userID,
				Type:               models.LegCredit,
				Amount:             in.Amount,
				Description:        rcpt.creditDesc,
				SenderAccount:      fromCard.AccountNumber,
				SenderShortCode:    fromCard.ShortCode,
				RecipientAccount:   rcpt.accountNumber,
				RecipientShortCode: rcpt.shortCode,
				RecipientUserID:    &rcpt.userID,
			}
			if rcpt.toCard != nil {
				credit.CardID = &rcpt.toCard.ID
				credit.RecipientCardID = &rcpt.toCard.ID
			}
			if err := tx.CreateTransaction(ctx, credit); err != nil {
				return err
			}
		}

		fromAfter, err := tx.CardByID(ctx, fromCard.ID)
		if err != nil {
			return err
		}
		result = &TransferResult{FromCard: fromAfter, DebitTransaction: debit}
		if rcpt.toCard != nil {
			toAfter, err := tx.CardByID(ctx, rcpt.toCard.ID)
			if err != nil {
				return err
			}
			result.ToCard = toAfter
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveRecipient derives all counterparty details from stored documents.
// Client-supplied bank details are only honoured for external transfers.
func (svc *Service) resolveRecipient(ctx context.Context, tx *store.Store, caller *models.User, fromCard *models.Card, in TransferInput) (*recipient, error) {
	switch in.Type {
	case TransferSelf:
		toCard, err := tx.CardByID(ctx, in.ToCardID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidDestination
		}
		if err != nil {
			return nil, err
		}
		if toCard.UserID != caller.ID || toCard.ID == fromCard.ID {
			return nil, ErrInvalidDestination
		}
		return &recipient{
			toCard:        toCard,
			userID:        caller.ID,
			accountNumber: toCard.AccountNumber,
			shortCode:     toCard.ShortCode,
			debitDesc:     fmt.Sprintf("Transfer to own account %s", toCard.AccountNumber),
			creditDesc:    fmt.Sprintf("Transfer from own account %s", fromCard.AccountNumber),
		}, nil

	case TransferFriends:
		friend, err := tx.FriendByID(ctx, in.FriendID)
		if err != nil {
			return nil, err
		}
		if friend.UserID != caller.ID {
			return nil, store.ErrNotFound
		}
		friendUser, err := svc.resolveFriendUser(ctx, tx, friend)
		if err != nil {
			return nil, err
		}
		toCard, err := tx.FirstCardForUser(ctx, friendUser.ID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecipientUnavailable
		}
		if err != nil {
			return nil, err
		}
		return &recipient{
			toCard:        toCard,
			userID:        friendUser.ID,
			accountNumber: toCard.AccountNumber,
			shortCode:     toCard.ShortCode,
			debitDesc:     fmt.Sprintf("Transfer to friend %s (%s)", friendUser.AccountName, toCard.AccountNumber),
			creditDesc:    fmt.Sprintf("Transfer from %s (to friend %s)", caller.AccountName, friendUser.AccountName),
		}, nil

	case TransferOthers:
		if in.ExternalAccount == "" || in.ExternalShortCode == "" {
			return nil, ErrMissingRecipientDetails
		}
		return &recipient{
			accountNumber: in.ExternalAccount,
			shortCode:     in.ExternalShortCode,
			debitDesc:     fmt.Sprintf("Transfer to external account %s (%s)", in.ExternalAccount, in.ExternalShortCode),
		}, nil

	default:
		return nil, ErrInvalidTransferType
	}
}

// resolveFriendUser maps an address-book entry to a registered user. The
// stored link is tried first; if it was never established (or dangles) the
// account number is re-resolved, which covers a payee who registered after
// being added.
func (svc *Service) resolveFriendUser(ctx context.Context, tx *store.Store, friend *models.Friend) (*models.User, error) {
	if friend.FriendUserID != nil {
		u, err := tx.UserByID(ctx, *friend.FriendUserID)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	u, err := tx.UserByAccountID(ctx, friend.AccountNumber)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRecipientUnavailable
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
