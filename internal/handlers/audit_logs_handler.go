package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	loc  *time.Location
	log  *slog.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, loc *time.Location, log *slog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := audit.Query{
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		ActorID: c.Query("actorId"),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional day range, in the service timezone
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := parseDayIn(h.loc, fromStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		q.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := dayAfterIn(h.loc, toStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		q.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
