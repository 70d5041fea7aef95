package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/httpresp"
	ucUser "github.com/R0UTS/Animal-Hospitalty/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type AdminUsersHandler struct {
	list        *ucUser.ListUsers
	get         *ucUser.GetUser
	update      *ucUser.UpdateProfile
	setStatus   *ucUser.SetStatus
	setDocument *ucUser.SetDocumentStatus
	remove      *ucUser.DeleteUser
	log         *slog.Logger
}

func NewAdminUsersHandler(
	list *ucUser.ListUsers,
	get *ucUser.GetUser,
	update *ucUser.UpdateProfile,
	setStatus *ucUser.SetStatus,
	setDocument *ucUser.SetDocumentStatus,
	remove *ucUser.DeleteUser,
	log *slog.Logger,
) *AdminUsersHandler {
	return &AdminUsersHandler{
		list:        list,
		get:         get,
		update:      update,
		setStatus:   setStatus,
		setDocument: setDocument,
		remove:      remove,
		log:         log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// ROUTES
// ======================================================

func (h *AdminUsersHandler) List(c *gin.Context) {
	users, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, users)
}

func (h *AdminUsersHandler) Get(c *gin.Context) {
	u, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *AdminUsersHandler) Update(c *gin.Context) {
	admin, ok := caller(c)
	if !ok {
		return
	}

	var upd domain.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid profile payload")
		return
	}

	u, err := h.update.Execute(c.Request.Context(), admin.UserID, c.Param("id"), upd)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *AdminUsersHandler) SetStatus(c *gin.Context) {
	admin, ok := caller(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required")
		return
	}

	u, err := h.setStatus.Execute(c.Request.Context(), admin.UserID, c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *AdminUsersHandler) SetDocumentStatus(c *gin.Context) {
	admin, ok := caller(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required")
		return
	}

	u, err := h.setDocument.Execute(c.Request.Context(), admin.UserID, c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *AdminUsersHandler) Delete(c *gin.Context) {
	admin, ok := caller(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), admin.UserID, c.Param("id")); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
