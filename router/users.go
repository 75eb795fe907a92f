package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketbank/auth"
)

type changePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

// GET /api/users/profile
func (a *App) getProfile(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"accountName": user.AccountName,
		"accountId":   user.AccountID,
		"email":       user.Email,
		"phone":       user.Phone,
	})
}

// PUT /api/users/profile/password
func (a *App) updatePassword(c *gin.Context) {
	user := currentUser(c)
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid password data")
		return
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Current password is incorrect"})
		return
	}
	if len(req.NewPassword) < 10 {
		badRequest(c, "New password must be at least 10 characters long")
		return
	}
	if req.NewPassword != req.ConfirmNewPassword {
		badRequest(c, "New passwords do not match")
		return
	}
	if req.CurrentPassword == req.NewPassword {
		badRequest(c, "New password cannot be the same as the current password")
		return
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		fail(c, err)
		return
	}
	if err := a.Store.UpdateUserPassword(c.Request.Context(), user.ID, hash); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
