package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketbank/auth"
	"pocketbank/models"
	"pocketbank/store"
)

type registerRequest struct {
	AccountName string `json:"accountName" binding:"required"`
	AccountID   string `json:"accountId" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
}

type loginRequest struct {
	AccountID string `json:"accountId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type authResponse struct {
	ID          string `json:"id"`
	AccountName string `json:"accountName"`
	Email       string `json:"email"`
	Token       string `json:"token"`
}

// POST /api/auth/register
func (a *App) registerUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid user data")
		return
	}
	ctx := c.Request.Context()

	if _, err := a.Store.UserByAccountID(ctx, req.AccountID); err == nil {
		badRequest(c, "User already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	user := &models.User{
		AccountName: req.AccountName,
		AccountID:   req.AccountID,
		Password:    hash,
		Email:       req.Email,
		Phone:       req.Phone,
	}
	if err := a.Store.CreateUser(ctx, user); err != nil {
		// email/phone uniqueness violations land here
		badRequest(c, "Invalid user data")
		return
	}
	token, err := auth.GenerateToken(user.ID, []byte(a.Cfg.JWTSecret))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{
		ID:          user.ID,
		AccountName: user.AccountName,
		Email:       user.Email,
		Token:       token,
	})
}

// POST /api/auth/login
func (a *App) loginUser(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid user data")
		return
	}
	user, err := a.Store.UserByAccountID(c.Request.Context(), req.AccountID)
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid account ID or password"})
		return
	}
	token, err := auth.GenerateToken(user.ID, []byte(a.Cfg.JWTSecret))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{
		ID:          user.ID,
		AccountName: user.AccountName,
		Email:       user.Email,
		Token:       token,
	})
}
