package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketbank/models"
	"pocketbank/store"
)

type addFriendRequest struct {
	Name          string `json:"name" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	ShortCode     string `json:"shortCode" binding:"required"`
}

// GET /api/friends
func (a *App) getFriends(c *gin.Context) {
	user := currentUser(c)
	friends, err := a.Store.FriendsByUser(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// POST /api/friends
func (a *App) addFriend(c *gin.Context) {
	user := currentUser(c)
	var req addFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide friend's name, account number, and short code.")
		return
	}
	if req.AccountNumber == user.AccountID {
		badRequest(c, "You cannot add yourself as a friend")
		return
	}
	ctx := c.Request.Context()

	if _, err := a.Store.FriendByDetails(ctx, user.ID, req.AccountNumber, req.ShortCode); err == nil {
		badRequest(c, "Friend with this account number and short code already exists for you.")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		fail(c, err)
		return
	}

	friend := &models.Friend{
		UserID:        user.ID,
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		ShortCode:     req.ShortCode,
	}
	// best-effort link to a registered user with this account identifier
	if existing, err := a.Store.UserByAccountID(ctx, req.AccountNumber); err == nil {
		friend.FriendUserID = &existing.ID
	} else if !errors.Is(err, store.ErrNotFound) {
		fail(c, err)
		return
	}

	if err := a.Store.CreateFriend(ctx, friend); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":            friend.ID,
		"name":          friend.Name,
		"accountNumber": friend.AccountNumber,
		"shortCode":     friend.ShortCode,
		"message":       "Friend added successfully!",
	})
}

// DELETE /api/friends/:id
func (a *App) deleteFriend(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	friend, err := a.Store.FriendByID(ctx, c.Param("id"))
	if err != nil || friend.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Friend not found"})
		return
	}
	if err := a.Store.DeleteFriend(ctx, friend.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}
