package user

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/user"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/repository/memory"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/storage"
)

type fixture struct {
	repo     *memory.Store
	files    *storage.LocalStore
	tokens   *auth.TokenManager
	register *Register
	login    *Login
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.New(nil)
	files, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	hasher := auth.NewPasswordHasher(4)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return &fixture{
		repo:     repo,
		files:    files,
		tokens:   tokens,
		register: NewRegister(repo, hasher, files, nil, RegisterOptions{AllowAdmin: true}, nil),
		login:    NewLogin(repo, hasher, tokens, nil),
	}
}

func document() *storage.Upload {
	return &storage.Upload{
		Name: "licence.pdf",
		Size: 4,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("%PDF")), nil },
	}
}

func farmerInput() RegisterInput {
	return RegisterInput{
		Email:          " Ravi@Example.com ",
		UserName:       "ravi",
		Password:       "password123",
		Role:           "farmer",
		PhoneNumber:    "9876543210",
		FarmerLocation: "BHADRAK",
	}
}

func vetInput() RegisterInput {
	return RegisterInput{
		Email:           "vet@example.com",
		UserName:        "drmishra",
		Password:        "password123",
		Role:            "veterinarian",
		PhoneNumber:     "9123456780",
		VetLocation:     "Bhadrak",
		Specialization:  "Bovine",
		SupportDocument: document(),
	}
}

func TestRegister_Farmer(t *testing.T) {
	f := newFixture(t)
	u, err := f.register.Execute(context.Background(), farmerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "ravi@example.com" || u.Status != "Active" || u.Role != "farmer" {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "password123" || u.PasswordHash == "" {
		t.Errorf("password stored as %q", u.PasswordHash)
	}
	if u.VetLocation != "" || u.SupportDocumentStatus != "" {
		t.Errorf("vet fields on farmer: %+v", u)
	}
}

func TestRegister_Conflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	if _, err := f.register.Execute(ctx, farmerInput()); err != nil {
		t.Fatal(err)
	}

	sameEmail := vetInput()
	sameEmail.Email = "RAVI@example.com"
	samePhone := vetInput()
	samePhone.PhoneNumber = "9876543210"

	for name, in := range map[string]RegisterInput{"email": sameEmail, "phone": samePhone} {
		_, err := f.register.Execute(ctx, in)
		if httperr.Status(err) != 409 {
			t.Errorf("%s duplicate: err = %v", name, err)
		}
	}

	users, _ := f.repo.ListUsers(ctx)
	if len(users) != 1 {
		t.Errorf("users = %d, want 1", len(users))
	}
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		code   string
	}{
		{"missing email", func(in *RegisterInput) { in.Email = " " }, "missing_fields"},
		{"short phone", func(in *RegisterInput) { in.PhoneNumber = "98765" }, "invalid_phone"},
		{"letters in phone", func(in *RegisterInput) { in.PhoneNumber = "98765abcde" }, "invalid_phone"},
		{"short password", func(in *RegisterInput) { in.Password = "short" }, "weak_password"},
		{"password over bcrypt limit", func(in *RegisterInput) { in.Password = strings.Repeat("a", 73) }, "password_too_long"},
		{"bad role", func(in *RegisterInput) { in.Role = "owner" }, "invalid_role"},
		{"vet without location", func(in *RegisterInput) {
			*in = vetInput()
			in.VetLocation = ""
		}, "vet_location_required"},
		{"vet without document", func(in *RegisterInput) {
			*in = vetInput()
			in.SupportDocument = nil
		}, "support_document_required"},
	}
	for _, tt := range tests {
		in := farmerInput()
		tt.mutate(&in)
		_, err := f.register.Execute(context.Background(), in)
		if !httperr.IsBusiness(err, tt.code) {
			t.Errorf("%s: err = %v, want %s", tt.name, err, tt.code)
		}
	}
}

func TestRegister_AdminDisabled(t *testing.T) {
	f := newFixture(t)
	uc := NewRegister(f.repo, auth.NewPasswordHasher(4), f.files, nil, RegisterOptions{}, nil)

	in := farmerInput()
	in.Role = "admin"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "admin_registration_disabled") {
		t.Errorf("err = %v", err)
	}
}

func TestVetPendingUntilAdminActivates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	vet, err := f.register.Execute(ctx, vetInput())
	if err != nil {
		t.Fatalf("Register vet: %v", err)
	}
	if vet.Status != "Pending" || vet.SupportDocumentStatus != "Pending" || vet.SupportDocument == "" {
		t.Fatalf("vet = %+v", vet)
	}
	if _, err := f.files.Open(ctx, vet.SupportDocument); err != nil {
		t.Errorf("support document not stored: %v", err)
	}

	_, err = f.login.Execute(ctx, LoginInput{LoginID: "vet@example.com", Password: "password123"})
	if !errors.Is(err, ErrNotApproved) {
		t.Fatalf("pending vet login err = %v", err)
	}

	if _, err := NewSetStatus(f.repo, nil).Execute(ctx, "admin", vet.ID, "Active"); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	res, err := f.login.Execute(ctx, LoginInput{LoginID: "vet@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login after activation: %v", err)
	}
	claims, err := f.tokens.Validate(res.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != vet.ID || claims.Role != "veterinarian" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := NewSetStatus(f.repo, nil).Execute(ctx, "admin", vet.ID, "Suspended"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.login.Execute(ctx, LoginInput{LoginID: "vet@example.com", Password: "password123"}); !errors.Is(err, ErrNotApproved) {
		t.Errorf("suspended vet login err = %v", err)
	}
}

func TestLogin_Identifiers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u, _ := f.register.Execute(ctx, farmerInput())

	for _, id := range []string{"9876543210", "ravi@example.com", "ravi", " ravi "} {
		res, err := f.login.Execute(ctx, LoginInput{LoginID: id, Password: " password123 "})
		if err != nil {
			t.Fatalf("login %q: %v", id, err)
		}
		claims, _ := f.tokens.Validate(res.Token)
		if claims.UserID != u.ID || claims.Role != "farmer" {
			t.Errorf("login %q claims = %+v", id, claims)
		}
	}

	if _, err := f.login.Execute(ctx, LoginInput{LoginID: "ravi", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := f.login.Execute(ctx, LoginInput{LoginID: "nobody", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u, _ := f.register.Execute(ctx, farmerInput())
	uc := NewChangePassword(f.repo, auth.NewPasswordHasher(4), nil)

	err := uc.Execute(ctx, u.ID, ChangePasswordInput{CurrentPassword: "nope-nope", NewPassword: "newpassword1"})
	if !httperr.IsBusiness(err, "invalid_current_password") {
		t.Fatalf("wrong current err = %v", err)
	}

	if err := uc.Execute(ctx, u.ID, ChangePasswordInput{CurrentPassword: "password123", NewPassword: "short"}); !httperr.IsBusiness(err, "weak_password") {
		t.Errorf("weak new password err = %v", err)
	}
	long := strings.Repeat("x", domain.MaxPasswordLength+1)
	if err := uc.Execute(ctx, u.ID, ChangePasswordInput{CurrentPassword: "password123", NewPassword: long}); !httperr.IsBusiness(err, "password_too_long") {
		t.Errorf("long new password err = %v", err)
	}

	if err := uc.Execute(ctx, u.ID, ChangePasswordInput{CurrentPassword: "password123", NewPassword: "newpassword1"}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := f.login.Execute(ctx, LoginInput{LoginID: "ravi", Password: "newpassword1"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := f.login.Execute(ctx, LoginInput{LoginID: "ravi", Password: "password123"}); err == nil {
		t.Error("old password still works")
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	farmer, _ := f.register.Execute(ctx, farmerInput())
	vet, _ := f.register.Execute(ctx, vetInput())
	uc := NewUpdateProfile(f.repo, nil)

	loc := "Balasore"
	got, err := uc.Execute(ctx, farmer.ID, farmer.ID, domain.ProfileUpdate{FarmerLocation: &loc})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.FarmerLocation != "Balasore" {
		t.Errorf("location = %q", got.FarmerLocation)
	}

	if _, err := uc.Execute(ctx, farmer.ID, farmer.ID, domain.ProfileUpdate{VetLocation: &loc}); httperr.Status(err) != 400 {
		t.Errorf("farmer setting vetLocation err = %v", err)
	}

	phone := vet.PhoneNumber
	if _, err := uc.Execute(ctx, farmer.ID, farmer.ID, domain.ProfileUpdate{PhoneNumber: &phone}); !errors.Is(err, domain.ErrExists) {
		t.Errorf("taken phone err = %v", err)
	}
}

func TestAdminOperations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	farmer, _ := f.register.Execute(ctx, farmerInput())
	vet, _ := f.register.Execute(ctx, vetInput())

	list, err := NewListUsers(f.repo).Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	locations := map[string]string{}
	for _, s := range list {
		locations[s.ID] = s.Location
	}
	if locations[farmer.ID] != "BHADRAK" || locations[vet.ID] != "BHADRAK" {
		t.Errorf("locations = %v", locations)
	}

	docs := NewSetDocumentStatus(f.repo, nil)
	if _, err := docs.Execute(ctx, "admin", farmer.ID, "Approved"); !httperr.IsBusiness(err, "not_a_veterinarian") {
		t.Errorf("farmer document err = %v", err)
	}
	if _, err := docs.Execute(ctx, "admin", vet.ID, "Maybe"); !httperr.IsBusiness(err, "invalid_document_status") {
		t.Errorf("bad document status err = %v", err)
	}
	got, err := docs.Execute(ctx, "admin", vet.ID, "Approved")
	if err != nil || got.SupportDocumentStatus != "Approved" {
		t.Errorf("approve = %+v, %v", got, err)
	}

	if _, err := NewSetStatus(f.repo, nil).Execute(ctx, "admin", vet.ID, "Retired"); !httperr.IsBusiness(err, "invalid_status") {
		t.Errorf("bad status err = %v", err)
	}

	del := NewDeleteUser(f.repo, nil)
	if err := del.Execute(ctx, "admin", farmer.ID); err != nil {
		t.Fatal(err)
	}
	if err := del.Execute(ctx, "admin", farmer.ID); httperr.Status(err) != 404 {
		t.Errorf("second delete err = %v", err)
	}
}
