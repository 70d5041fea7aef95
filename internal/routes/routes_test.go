package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/R0UTS/Animal-Hospitalty/internal/audit"
	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	"github.com/R0UTS/Animal-Hospitalty/internal/config"
	"github.com/R0UTS/Animal-Hospitalty/internal/handlers"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/repository/memory"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
)

const testSecret = "route-test-secret"

type app struct {
	t      *testing.T
	r      *gin.Engine
	store  *memory.Store
	audit  *audit.Dispatcher
	tokens *auth.TokenManager
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:                      "test",
		JWTSecret:                testSecret,
		JWTTTL:                   "1h",
		BcryptCost:               4,
		Timezone:                 "Asia/Kolkata",
		CORSAllowedOrigins:       "*",
		MaxUploadMB:              5,
		AdminRegistrationEnabled: true,
	}

	store := memory.New(nil)
	files, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dispatcher := audit.NewDispatcher(audit.New(store), nil)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:      cfg,
		Users:       store,
		Animals:     store,
		Emergencies: store,
		AuditStore:  store,
		Audit:       dispatcher,
		Files:       files,
		Checks:      map[string]handlers.Pinger{"database": store},
	})

	return &app{
		t:      t,
		r:      r,
		store:  store,
		audit:  dispatcher,
		tokens: auth.NewTokenManager(testSecret, time.Hour),
	}
}

func (a *app) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *app) json(method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatal(err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, token)
}

type file struct {
	field, name, content string
}

func (a *app) multipart(path, token string, fields map[string]string, files ...file) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			a.t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			a.t.Fatal(err)
		}
		if _, err := io.WriteString(fw, f.content); err != nil {
			a.t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		a.t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req, token)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expect(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d: %s", w.Code, want, w.Body.String())
	}
}

type registered struct {
	User struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
	Status string `json:"status"`
}

type loggedIn struct {
	Token string `json:"token"`
	User  struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

type emergencyBody struct {
	EmergencyID string   `json:"emergencyId"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	ImageURLs   []string `json:"imageUrls"`
}

type listBody[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func (a *app) register(fields map[string]string, files ...file) registered {
	a.t.Helper()
	w := a.multipart("/api/user/register", "", fields, files...)
	expect(a.t, w, http.StatusCreated)
	return decode[registered](a.t, w)
}

func (a *app) login(loginID string) loggedIn {
	a.t.Helper()
	w := a.json(http.MethodPost, "/api/user/login", "", map[string]string{"loginId": loginID, "password": "password123"})
	expect(a.t, w, http.StatusOK)
	return decode[loggedIn](a.t, w)
}

func farmerForm() map[string]string {
	return map[string]string{
		"email":          "ravi@example.com",
		"userName":       "ravi",
		"password":       "password123",
		"role":           "farmer",
		"phoneNumber":    "9876543210",
		"farmerLocation": "BHADRAK",
	}
}

func vetForm(email, phone, location string) map[string]string {
	return map[string]string{
		"email":          email,
		"userName":       email,
		"password":       "password123",
		"role":           "veterinarian",
		"phoneNumber":    phone,
		"vetLocation":    location,
		"specialization": "Bovine",
	}
}

var licence = file{field: "supportDocument", name: "licence.pdf", content: "%PDF-1.4"}

// ======================================================
// SCENARIOS
// ======================================================

func TestVetApprovalFlow(t *testing.T) {
	a := newApp(t)

	vet := a.register(vetForm("vet@example.com", "9123456780", "Bhadrak"), licence)
	if vet.Status != "Pending" {
		t.Fatalf("vet status = %q, want Pending", vet.Status)
	}

	w := a.json(http.MethodPost, "/api/user/login", "", map[string]string{"loginId": "vet@example.com", "password": "password123"})
	expect(t, w, http.StatusForbidden)
	if got := decode[errorBody](t, w).Code; got != "account_not_approved" {
		t.Errorf("error_code = %q", got)
	}

	a.register(map[string]string{
		"email": "admin@example.com", "userName": "admin", "password": "password123",
		"role": "admin", "phoneNumber": "9000000000",
	})
	admin := a.login("admin@example.com")

	w = a.json(http.MethodPut, "/api/user/users/"+vet.User.ID+"/status", admin.Token, map[string]string{"status": "Active"})
	expect(t, w, http.StatusOK)

	got := a.login("vet@example.com")
	if got.User.Role != "veterinarian" {
		t.Errorf("role = %q", got.User.Role)
	}
}

func TestLoginByPhone(t *testing.T) {
	a := newApp(t)
	a.register(farmerForm())

	res := a.login("9876543210")
	claims, err := a.tokens.Validate(res.Token)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if claims.Role != "farmer" || claims.UserID != res.User.ID {
		t.Errorf("claims = %+v", claims)
	}

	w := a.json(http.MethodPost, "/api/user/login", "", map[string]string{"loginId": "9876543210", "password": "wrong-password"})
	expect(t, w, http.StatusUnauthorized)
}

func TestDuplicateRegistration(t *testing.T) {
	a := newApp(t)
	a.register(farmerForm())

	form := farmerForm()
	form["email"] = "other@example.com"
	w := a.multipart("/api/user/register", "", form)
	expect(t, w, http.StatusConflict)

	users, _ := a.store.ListUsers(context.Background())
	if len(users) != 1 {
		t.Errorf("users = %d, want 1", len(users))
	}
}

func TestAccessControl(t *testing.T) {
	a := newApp(t)
	a.register(farmerForm())
	farmer := a.login("ravi@example.com")

	expect(t, a.json(http.MethodGet, "/api/user/profile", "", nil), http.StatusUnauthorized)
	expect(t, a.json(http.MethodGet, "/api/user/profile", "garbage", nil), http.StatusForbidden)
	expect(t, a.json(http.MethodGet, "/api/user/users", farmer.Token, nil), http.StatusForbidden)
	expect(t, a.json(http.MethodGet, "/api/emergency/statistics", farmer.Token, nil), http.StatusForbidden)

	w := a.json(http.MethodGet, "/api/user/profile", farmer.Token, nil)
	expect(t, w, http.StatusOK)
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Errorf("profile leaks password: %s", w.Body.String())
	}
}

func TestEmergencyLocationScenario(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	a.register(farmerForm())
	near := a.register(vetForm("near@example.com", "9111111111", "Bhadrak Sadar"), licence)
	far := a.register(vetForm("far@example.com", "9222222222", "CUTTACK"), licence)
	for _, id := range []string{near.User.ID, far.User.ID} {
		u, _ := a.store.GetUser(ctx, id)
		u.Status = "Active"
		if err := a.store.UpdateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	farmer := a.login("ravi@example.com")
	nearVet := a.login("near@example.com")
	farVet := a.login("far@example.com")

	w := a.multipart("/api/emergency", farmer.Token, map[string]string{
		"location":    "Near the river",
		"description": "Buffalo injured",
		"animals":     `[{"animalType":"Buffalo","breed":"Murrah","age":5}]`,
	}, file{field: "images", name: "leg.jpg", content: "not really a jpeg"})
	expect(t, w, http.StatusCreated)
	created := decode[emergencyBody](t, w)
	if created.Status != "Pending" || len(created.Images) != 1 {
		t.Fatalf("created = %+v", created)
	}

	// attachment is served back
	w = a.json(http.MethodGet, created.ImageURLs[0], "", nil)
	expect(t, w, http.StatusOK)
	if w.Body.String() != "not really a jpeg" {
		t.Errorf("attachment body = %q", w.Body.String())
	}

	w = a.json(http.MethodGet, "/api/emergency/vet-emergencies", nearVet.Token, nil)
	expect(t, w, http.StatusOK)
	if got := decode[listBody[emergencyBody]](t, w); got.Total != 1 {
		t.Errorf("near vet sees %d", got.Total)
	}

	w = a.json(http.MethodGet, "/api/emergency/vet-emergencies", farVet.Token, nil)
	expect(t, w, http.StatusOK)
	if got := decode[listBody[emergencyBody]](t, w); got.Total != 0 {
		t.Errorf("far vet sees %d", got.Total)
	}

	path := "/api/emergency/" + created.EmergencyID
	expect(t, a.json(http.MethodGet, path, farVet.Token, nil), http.StatusForbidden)
	expect(t, a.json(http.MethodPatch, path+"/status", farVet.Token, map[string]string{"status": "Acknowledged"}), http.StatusForbidden)

	w = a.json(http.MethodPatch, path+"/status", nearVet.Token, map[string]string{"status": "Resolved"})
	expect(t, w, http.StatusBadRequest)
	if got := decode[errorBody](t, w).Code; got != "invalid_transition" {
		t.Errorf("error_code = %q", got)
	}

	w = a.json(http.MethodPatch, path+"/status", nearVet.Token, map[string]string{"status": "acknowledge"})
	expect(t, w, http.StatusOK)
	if got := decode[emergencyBody](t, w).Status; got != "Acknowledged" {
		t.Errorf("status = %q", got)
	}

	w = a.json(http.MethodGet, path, farmer.Token, nil)
	expect(t, w, http.StatusOK)
	if got := decode[emergencyBody](t, w).Status; got != "Acknowledged" {
		t.Errorf("farmer sees %q", got)
	}
}

func TestEmergencyWithoutVetIsRejected(t *testing.T) {
	a := newApp(t)
	a.register(farmerForm())
	farmer := a.login("ravi@example.com")

	w := a.multipart("/api/emergency", farmer.Token, map[string]string{
		"location":    "Field",
		"description": "Goat stuck",
		"animals":     `[{"animalType":"Goat","breed":"Black Bengal","age":1}]`,
	}, file{field: "images", name: "goat.png", content: "png"})
	expect(t, w, http.StatusBadRequest)
	if got := decode[errorBody](t, w).Message; got != "No vet in your location" {
		t.Errorf("message = %q", got)
	}

	w = a.json(http.MethodGet, "/api/emergency", farmer.Token, nil)
	expect(t, w, http.StatusOK)
	if got := decode[listBody[emergencyBody]](t, w); got.Total != 0 {
		t.Errorf("stored %d reports", got.Total)
	}

	w = a.multipart("/api/emergency", farmer.Token, map[string]string{
		"location": "Field", "description": "Goat stuck", "animals": "not json",
	})
	expect(t, w, http.StatusBadRequest)
	if got := decode[errorBody](t, w).Code; got != "invalid_animals_format" {
		t.Errorf("error_code = %q", got)
	}
}

func TestAnimalRoutes(t *testing.T) {
	a := newApp(t)
	reg := a.register(farmerForm())
	farmer := a.login("ravi@example.com")

	w := a.json(http.MethodPost, "/api/animal", farmer.Token, map[string]string{
		"animalId": "tag-7", "species": "Cow", "approxDOB": "2020-01-01",
	})
	expect(t, w, http.StatusCreated)

	expect(t, a.json(http.MethodPost, "/api/animal", farmer.Token, map[string]string{"animalId": "tag-7", "species": "Cow"}), http.StatusConflict)

	w = a.json(http.MethodGet, "/api/animal/farmer/"+reg.User.ID, farmer.Token, nil)
	expect(t, w, http.StatusOK)
	if got := decode[listBody[map[string]any]](t, w); got.Total != 1 {
		t.Errorf("animals = %d", got.Total)
	}

	w = a.json(http.MethodPut, "/api/animal/tag-7", farmer.Token, map[string]any{"nickName": "Lali", "approxDOB": nil})
	expect(t, w, http.StatusOK)
	updated := decode[map[string]any](t, w)
	if updated["nickName"] != "Lali" || updated["age"] != nil {
		t.Errorf("updated = %v", updated)
	}

	expect(t, a.json(http.MethodDelete, "/api/animal/tag-7", farmer.Token, nil), http.StatusOK)
	expect(t, a.json(http.MethodGet, "/api/animal/tag-7", farmer.Token, nil), http.StatusNotFound)
}

func TestAuditLogs(t *testing.T) {
	a := newApp(t)
	a.register(farmerForm())
	a.register(map[string]string{
		"email": "admin@example.com", "userName": "admin", "password": "password123",
		"role": "admin", "phoneNumber": "9000000000",
	})
	admin := a.login("admin@example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.audit.Close(ctx); err != nil {
		t.Fatal(err)
	}

	w := a.json(http.MethodGet, "/api/audit-logs?action=user_registered&limit=1", admin.Token, nil)
	expect(t, w, http.StatusOK)
	page := decode[struct {
		Data  []map[string]any `json:"data"`
		Total int64            `json:"total"`
		Limit int              `json:"limit"`
	}](t, w)
	if page.Total != 2 || len(page.Data) != 1 || page.Limit != 1 {
		t.Errorf("page = %+v", page)
	}

	expect(t, a.json(http.MethodGet, "/api/audit-logs?from=yesterday", admin.Token, nil), http.StatusBadRequest)
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	expect(t, a.json(http.MethodGet, "/health", "", nil), http.StatusOK)
	expect(t, a.json(http.MethodGet, "/readyz", "", nil), http.StatusOK)
}
