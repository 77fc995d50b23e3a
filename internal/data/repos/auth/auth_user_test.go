package auth

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/repos/testutil"
	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
)

func TestAuthUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAuthUserRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "Julia")

	created, err := repo.Create(dbc, &types.AuthUser{Username: " julia ", PasswordHash: "hash", AppUserID: u.ID, AppUser: u})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.Username != "julia" {
		t.Fatalf("Create: unexpected row %+v", created)
	}

	got, err := repo.GetByUsername(dbc, "julia")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.AppUser == nil || got.AppUser.ID != u.ID || got.AppUser.Name != "Julia" {
		t.Fatalf("GetByUsername: app user not loaded: %+v", got)
	}

	if _, err := repo.GetByUsername(dbc, "nobody"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByUsername (missing): expected ErrRecordNotFound, got %v", err)
	}

	exists, err := repo.UsernameExists(dbc, "julia")
	if err != nil || !exists {
		t.Fatalf("UsernameExists: got=%v err=%v", exists, err)
	}
	exists, err = repo.UsernameExists(dbc, "nobody")
	if err != nil || exists {
		t.Fatalf("UsernameExists (missing): got=%v err=%v", exists, err)
	}
}

func TestAuthUserRepoRejectsDuplicateUsername(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewAuthUserRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "Julia")
	if _, err := repo.Create(dbc, &types.AuthUser{Username: "julia", PasswordHash: "a", AppUserID: u.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(dbc, &types.AuthUser{Username: "julia", PasswordHash: "b", AppUserID: u.ID}); err == nil {
		t.Fatalf("Create (duplicate): expected unique violation")
	}
}
