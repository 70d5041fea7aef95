package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	ucUser "github.com/R0UTS/Animal-Hospitalty/internal/usecase/user"
)

// ProfileHandler serves the caller's own account.
type ProfileHandler struct {
	get            *ucUser.GetUser
	update         *ucUser.UpdateProfile
	changePassword *ucUser.ChangePassword
	log            *slog.Logger
}

func NewProfileHandler(
	get *ucUser.GetUser,
	update *ucUser.UpdateProfile,
	changePassword *ucUser.ChangePassword,
	log *slog.Logger,
) *ProfileHandler {
	return &ProfileHandler{get: get, update: update, changePassword: changePassword, log: log}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	u, err := h.get.Execute(c.Request.Context(), me.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile payload")
		return
	}

	u, err := h.update.Execute(c.Request.Context(), me.UserID, me.UserID, upd)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid password payload")
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), me.UserID, ucUser.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
