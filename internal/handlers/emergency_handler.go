package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/dto"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/httpresp"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
	ucEmergency "github.com/R0UTS/Animal-Hospitalty/internal/usecase/emergency"
)

// ======================================================
// HANDLER
// ======================================================

type EmergencyHandler struct {
	create  *ucEmergency.CreateEmergency
	reader  *ucEmergency.Reader
	status  *ucEmergency.UpdateStatus
	reports *ucEmergency.Reports
	maxBody int64
	log     *slog.Logger
}

func NewEmergencyHandler(
	create *ucEmergency.CreateEmergency,
	reader *ucEmergency.Reader,
	status *ucEmergency.UpdateStatus,
	reports *ucEmergency.Reports,
	maxBody int64,
	log *slog.Logger,
) *EmergencyHandler {
	return &EmergencyHandler{
		create:  create,
		reader:  reader,
		status:  status,
		reports: reports,
		maxBody: maxBody,
		log:     log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

// Create reads a multipart form: location, description, animals (a JSON
// array), optional farmerPhone / farmerEmail and any number of images and
// videos files.
func (h *EmergencyHandler) Create(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Attachments exceed the upload limit")
			return
		}
		httperr.BadRequest(c, "invalid_request", "Could not read the uploaded form")
		return
	}

	in := ucEmergency.CreateInput{
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		FarmerPhone: c.PostForm("farmerPhone"),
		FarmerEmail: c.PostForm("farmerEmail"),
	}

	if raw := c.PostForm("animals"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Animals); err != nil {
			httperr.BadRequest(c, "invalid_animals_format", "Invalid animals data format")
			return
		}
	}

	if form != nil {
		in.Images = uploadsFrom(form.File["images"])
		in.Videos = uploadsFrom(form.File["videos"])
	}

	e, err := h.create.Execute(c.Request.Context(), me, in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, dto.NewEmergencyDTO(e))
}

func uploadsFrom(files []*multipart.FileHeader) []storage.Upload {
	out := make([]storage.Upload, 0, len(files))
	for _, fh := range files {
		out = append(out, uploadFrom(fh))
	}
	return out
}

// ======================================================
// READ
// ======================================================

func (h *EmergencyHandler) ListMine(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	list, err := h.reader.ListMine(c.Request.Context(), me, limit)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewEmergencyList(list))
}

func (h *EmergencyHandler) ListForVet(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	list, err := h.reader.ListForVet(c.Request.Context(), me, limit)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewEmergencyList(list))
}

func (h *EmergencyHandler) Get(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	e, err := h.reader.Get(c.Request.Context(), me, c.Param("emergencyId"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.NewEmergencyDTO(e))
}

// ======================================================
// STATUS
// ======================================================

func (h *EmergencyHandler) UpdateStatus(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required")
		return
	}

	e, err := h.status.Execute(c.Request.Context(), me, c.Param("emergencyId"), req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.NewEmergencyDTO(e))
}

// ======================================================
// REPORTING (admin)
// ======================================================

func (h *EmergencyHandler) Statistics(c *gin.Context) {
	stats, err := h.reports.Statistics(c.Request.Context(), c.Query("location"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, stats)
}

func (h *EmergencyHandler) MonthlyStatistics(c *gin.Context) {
	stats, err := h.reports.Monthly(c.Request.Context(), c.Query("location"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, stats)
}

func (h *EmergencyHandler) Detailed(c *gin.Context) {
	list, err := h.reports.Detailed(c.Request.Context(), ucEmergency.DetailedInput{
		FromDate: c.Query("fromDate"),
		ToDate:   c.Query("toDate"),
		Status:   c.Query("status"),
		Location: c.Query("location"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewEmergencyList(list))
}

