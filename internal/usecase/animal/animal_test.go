package animal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/auth"
	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/animal"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/infra/repository/memory"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

func setup(t *testing.T) (*Registry, *memory.Store, auth.Identity, auth.Identity) {
	t.Helper()
	ctx := context.Background()
	store := memory.New(nil)

	farmer := &models.User{Email: "f@example.com", PhoneNumber: "9000000001", Role: "farmer"}
	other := &models.User{Email: "o@example.com", PhoneNumber: "9000000002", Role: "farmer"}
	for _, u := range []*models.User{farmer, other} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	now := func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	return NewRegistry(store, store, now), store,
		auth.Identity{UserID: farmer.ID, Role: "farmer"},
		auth.Identity{UserID: other.ID, Role: "farmer"}
}

func TestCreate_ComputesAge(t *testing.T) {
	uc, _, farmer, _ := setup(t)
	dob := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	a, err := uc.Create(context.Background(), farmer, CreateInput{Species: "Cow", NickName: "Lali", ApproxDOB: &dob})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.AnimalID == "" || a.OwnerID != farmer.UserID {
		t.Errorf("animal = %+v", a)
	}
	if a.AgeMonths == nil || *a.AgeMonths != 14 {
		t.Errorf("age = %v, want 14", a.AgeMonths)
	}
}

func TestCreate_Rules(t *testing.T) {
	ctx := context.Background()
	uc, store, farmer, _ := setup(t)

	if _, err := uc.Create(ctx, farmer, CreateInput{Species: " "}); !httperr.IsBusiness(err, "species_required") {
		t.Errorf("blank species err = %v", err)
	}

	if _, err := uc.Create(ctx, farmer, CreateInput{AnimalID: "tag-1", Species: "Goat"}); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Create(ctx, farmer, CreateInput{AnimalID: "tag-1", Species: "Goat"}); !errors.Is(err, domain.ErrExists) {
		t.Errorf("duplicate id err = %v", err)
	}

	vet := &models.User{Email: "v@example.com", PhoneNumber: "9000000003", Role: "veterinarian"}
	_ = store.CreateUser(ctx, vet)
	if _, err := uc.Create(ctx, auth.Identity{UserID: vet.ID, Role: "veterinarian"}, CreateInput{Species: "Cow"}); httperr.Status(err) != 403 {
		t.Errorf("vet create err = %v", err)
	}
}

func TestOwnership(t *testing.T) {
	ctx := context.Background()
	uc, _, farmer, other := setup(t)

	a, _ := uc.Create(ctx, farmer, CreateInput{Species: "Buffalo"})

	if _, err := uc.Get(ctx, other, a.AnimalID); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("other farmer get err = %v", err)
	}
	if _, err := uc.Get(ctx, auth.Identity{UserID: "admin", Role: "admin"}, a.AnimalID); err != nil {
		t.Errorf("admin get: %v", err)
	}

	species := "Cow"
	if _, err := uc.Update(ctx, other, a.AnimalID, UpdateInput{Species: &species}); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("other farmer update err = %v", err)
	}
	if err := uc.Delete(ctx, other, a.AnimalID); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("other farmer delete err = %v", err)
	}
	if _, err := uc.ListByOwner(ctx, other, farmer.UserID, 0); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("other farmer list err = %v", err)
	}

	if err := uc.Delete(ctx, farmer, a.AnimalID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := uc.Get(ctx, farmer, a.AnimalID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
}

func TestUpdate_RecomputesAge(t *testing.T) {
	ctx := context.Background()
	uc, _, farmer, _ := setup(t)

	a, _ := uc.Create(ctx, farmer, CreateInput{Species: "Cow"})
	if a.AgeMonths != nil {
		t.Fatalf("age without dob = %v", *a.AgeMonths)
	}

	dob := time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC)
	got, err := uc.Update(ctx, farmer, a.AnimalID, UpdateInput{DOBSet: true, ApproxDOB: &dob})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.AgeMonths == nil || *got.AgeMonths != 11 {
		t.Errorf("age = %v, want 11", got.AgeMonths)
	}

	got, _ = uc.Update(ctx, farmer, a.AnimalID, UpdateInput{DOBSet: true})
	if got.AgeMonths != nil || got.ApproxDOB != nil {
		t.Errorf("cleared dob left age %v", got.AgeMonths)
	}
}

func TestListByOwner_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	uc, _, farmer, _ := setup(t)

	for _, s := range []string{"Cow", "Goat", "Sheep"} {
		if _, err := uc.Create(ctx, farmer, CreateInput{Species: s}); err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	list, err := uc.ListByOwner(ctx, farmer, farmer.UserID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Species != "Sheep" {
		t.Errorf("list = %+v", list)
	}
}
