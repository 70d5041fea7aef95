package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
	ucUser "github.com/R0UTS/Animal-Hospitalty/internal/usecase/user"
)

type AuthHandler struct {
	register *ucUser.Register
	login    *ucUser.Login
	maxBody  int64
	log      *slog.Logger
}

func NewAuthHandler(
	register *ucUser.Register,
	login *ucUser.Login,
	maxBody int64,
	log *slog.Logger,
) *AuthHandler {
	return &AuthHandler{register: register, login: login, maxBody: maxBody, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Responses ---------

type UserSummary struct {
	ID          string `json:"id"`
	UserName    string `json:"userName"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func summarize(u *models.User) UserSummary {
	return UserSummary{
		ID:          u.ID,
		UserName:    u.UserName,
		Role:        u.Role,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}

// --------- Handlers ---------

// Register takes a multipart form so veterinarians can attach their support
// document.
func (h *AuthHandler) Register(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	in := ucUser.RegisterInput{
		Email:           c.PostForm("email"),
		UserName:        c.PostForm("userName"),
		Password:        c.PostForm("password"),
		Role:            c.PostForm("role"),
		PhoneNumber:     c.PostForm("phoneNumber"),
		FarmerLocation:  c.PostForm("farmerLocation"),
		AdditionalInfo:  c.PostForm("additionalInfo"),
		Specialization:  c.PostForm("specialization"),
		AreaOfExpertise: c.PostForm("areaOfExpertise"),
		VetLocation:     c.PostForm("vetLocation"),
	}

	if fh, err := c.FormFile("supportDocument"); err == nil {
		up := uploadFrom(fh)
		in.SupportDocument = &up
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		httperr.BadRequest(c, "invalid_request", "Could not read the uploaded form")
		return
	}

	u, err := h.register.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    summarize(u),
		"status":  u.Status,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "loginId and password are required")
		return
	}

	res, err := h.login.Execute(c.Request.Context(), ucUser.LoginInput{
		LoginID:  req.LoginID,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": res.Token,
		"user":  summarize(res.User),
	})
}

// uploadFrom adapts a multipart file to a storage upload.
func uploadFrom(fh *multipart.FileHeader) storage.Upload {
	return storage.Upload{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	}
}
