package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pocketbank/bank"
	"pocketbank/models"
	"pocketbank/store"
)

type transferRequest struct {
	FromCardID         string            `json:"fromCardId" binding:"required"`
	TransferAmount     decimal.Decimal   `json:"transferAmount"`
	TransferType       bank.TransferType `json:"transferType" binding:"required"`
	SelectedToCardID   string            `json:"selectedToCardId"`
	SelectedFriendID   string            `json:"selectedFriendId"`
	StrangerAccount    string            `json:"strangerAccount"`
	RecipientShortCode string            `json:"recipientShortCode"`
}

// compact card summary embedded in transaction listings; nil when the leg's
// card reference dangles (the card was deleted)
type cardSummary struct {
	ID     string          `json:"id"`
	Number string          `json:"number"`
	Type   models.CardType `json:"type"`
}

type transactionResponse struct {
	models.Transaction
	Card *cardSummary `json:"card,omitempty"`
}

// GET /api/transactions?cardId=&dateFilter=&typeFilter=
func (a *App) getTransactions(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	filter := store.TransactionFilter{CardID: c.Query("cardId")}
	switch c.Query("dateFilter") {
	case "7 days":
		since := time.Now().AddDate(0, 0, -7)
		filter.Since = &since
	case "1 month":
		since := time.Now().AddDate(0, -1, 0)
		filter.Since = &since
	case "1 year":
		since := time.Now().AddDate(-1, 0, 0)
		filter.Since = &since
	}
	switch c.Query("typeFilter") {
	case "Money-in":
		filter.Sign = 1
	case "Money-out":
		filter.Sign = -1
	}

	txs, err := a.Store.TransactionsByUser(ctx, user.ID, filter)
	if err != nil {
		fail(c, err)
		return
	}

	cards, err := a.Store.CardsByUser(ctx, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	summaries := make(map[string]*cardSummary, len(cards))
	for i := range cards {
		summaries[cards[i].ID] = &cardSummary{
			ID:     cards[i].ID,
			Number: cards[i].Number,
			Type:   cards[i].Type,
		}
	}

	out := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = transactionResponse{Transaction: tx}
		if tx.CardID != nil {
			out[i].Card = summaries[*tx.CardID]
		}
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/transactions/transfer
func (a *App) createTransfer(c *gin.Context) {
	user := currentUser(c)
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid transfer data")
		return
	}

	result, err := a.Transfers.Transfer(c.Request.Context(), user, bank.TransferInput{
		FromCardID:        req.FromCardID,
		Amount:            req.TransferAmount,
		Type:              req.TransferType,
		ToCardID:          req.SelectedToCardID,
		FriendID:          req.SelectedFriendID,
		ExternalAccount:   req.StrangerAccount,
		ExternalShortCode: req.RecipientShortCode,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Transfer successful",
		"fromCard":         result.FromCard,
		"toCard":           result.ToCard,
		"debitTransaction": result.DebitTransaction,
	})
}
