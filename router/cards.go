package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pocketbank/models"
	"pocketbank/store"
)

type addCardRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	ShortCode     string          `json:"shortCode" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	OpeningBank   string          `json:"openingBank" binding:"required"`
	Type          models.CardType `json:"type" binding:"required"`
	ExpiresEnd    string          `json:"expiresEnd" binding:"required"`
	// explicit funding at creation time; defaults to zero
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// GET /api/cards
func (a *App) getCards(c *gin.Context) {
	user := currentUser(c)
	cards, err := a.Store.CardsByUser(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// POST /api/cards
func (a *App) addCard(c *gin.Context) {
	user := currentUser(c)
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid card data")
		return
	}
	if !models.ValidCardType(req.Type) {
		badRequest(c, "Invalid card type")
		return
	}
	if req.InitialBalance.IsNegative() {
		badRequest(c, "Initial balance cannot be negative")
		return
	}
	ctx := c.Request.Context()

	if _, err := a.Store.CardByUserAndNumber(ctx, user.ID, req.AccountNumber); err == nil {
		badRequest(c, "Card with this account number already exists for this user")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		fail(c, err)
		return
	}

	card := &models.Card{
		UserID:        user.ID,
		Type:          req.Type,
		Balance:       req.InitialBalance,
		Holder:        req.Name,
		Number:        req.AccountNumber,
		Expires:       req.ExpiresEnd,
		AccountNumber: req.AccountNumber,
		ShortCode:     req.ShortCode,
		Bank:          req.OpeningBank,
	}
	if err := a.Store.CreateCard(ctx, card); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// DELETE /api/cards/:id
func (a *App) deleteCard(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	card, err := a.Store.CardByID(ctx, c.Param("id"))
	if err != nil || card.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Card not found or not authorized"})
		return
	}
	if err := a.Store.DeleteCard(ctx, card.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card removed"})
}
