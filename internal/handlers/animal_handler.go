package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/httpresp"
	ucAnimal "github.com/R0UTS/Animal-Hospitalty/internal/usecase/animal"
)

// ======================================================
// HANDLER
// ======================================================

type AnimalHandler struct {
	registry *ucAnimal.Registry
	loc      *time.Location
	log      *slog.Logger
}

func NewAnimalHandler(registry *ucAnimal.Registry, loc *time.Location, log *slog.Logger) *AnimalHandler {
	return &AnimalHandler{registry: registry, loc: loc, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAnimalRequest struct {
	AnimalID  string `json:"animalId"`
	Species   string `json:"species"`
	NickName  string `json:"nickName"`
	Breed     string `json:"breed"`
	ApproxDOB string `json:"approxDOB"`
}

// UpdateAnimalRequest keeps approxDOB raw so an explicit null (clear) can be
// told apart from an absent field.
type UpdateAnimalRequest struct {
	Species   *string         `json:"species"`
	NickName  *string         `json:"nickName"`
	Breed     *string         `json:"breed"`
	ApproxDOB json.RawMessage `json:"approxDOB"`
}

// ======================================================
// HELPERS
// ======================================================

// parseDOB accepts YYYY-MM-DD or RFC3339.
func (h *AnimalHandler) parseDOB(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := parseDayIn(h.loc, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_dob", "approxDOB must be YYYY-MM-DD")
	}
	return &t, nil
}

// ======================================================
// ROUTES
// ======================================================

func (h *AnimalHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid animal payload")
		return
	}

	dob, err := h.parseDOB(req.ApproxDOB)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	a, err := h.registry.Create(c.Request.Context(), me, ucAnimal.CreateInput{
		AnimalID:  req.AnimalID,
		Species:   req.Species,
		NickName:  req.NickName,
		Breed:     req.Breed,
		ApproxDOB: dob,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, a)
}

func (h *AnimalHandler) ListByOwner(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	animals, err := h.registry.ListByOwner(c.Request.Context(), me, c.Param("ownerId"), limit)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, animals)
}

func (h *AnimalHandler) Get(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	a, err := h.registry.Get(c.Request.Context(), me, c.Param("animalId"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, a)
}

func (h *AnimalHandler) Update(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid animal payload")
		return
	}

	in := ucAnimal.UpdateInput{
		Species:  req.Species,
		NickName: req.NickName,
		Breed:    req.Breed,
	}
	if len(req.ApproxDOB) > 0 {
		in.DOBSet = true
		if !bytes.Equal(req.ApproxDOB, []byte("null")) {
			var raw string
			if err := json.Unmarshal(req.ApproxDOB, &raw); err != nil {
				httperr.BadRequest(c, "invalid_dob", "approxDOB must be YYYY-MM-DD")
				return
			}
			dob, err := h.parseDOB(raw)
			if err != nil {
				httperr.Respond(c, h.log, err)
				return
			}
			in.ApproxDOB = dob
		}
	}

	a, err := h.registry.Update(c.Request.Context(), me, c.Param("animalId"), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, a)
}

func (h *AnimalHandler) Delete(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	if err := h.registry.Delete(c.Request.Context(), me, c.Param("animalId")); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Animal deleted successfully"})
}
