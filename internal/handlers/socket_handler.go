package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/notify"
)

// SocketHandler upgrades GET /socket to a relay connection. Clients pick
// rooms with joinRoom frames; a valid ?token= also joins the caller's role
// room straight away and unlocks the vets and admins rooms for that role.
type SocketHandler struct {
	hub      *notify.Hub
	tokens   *auth.TokenManager
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewSocketHandler(hub *notify.Hub, tokens *auth.TokenManager, origins []string, log *slog.Logger) *SocketHandler {
	if log == nil {
		log = slog.Default()
	}
	allowed := map[string]bool{}
	for _, o := range origins {
		allowed[o] = true
	}

	return &SocketHandler{
		hub:    hub,
		tokens: tokens,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

func (h *SocketHandler) Connect(c *gin.Context) {
	var (
		role  string
		rooms []string
	)
	if token := c.Query("token"); token != "" {
		claims, err := h.tokens.Validate(token)
		if err != nil {
			httperr.Write(c, http.StatusForbidden, "invalid_token", "Invalid or expired token")
			return
		}
		role = claims.Role
		if room := notify.RoomForRole(role); room != "" {
			rooms = append(rooms, room)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.log.Debug("socket upgrade failed", slog.String("error", err.Error()))
		return
	}

	h.hub.Attach(conn, role, rooms...)
}
