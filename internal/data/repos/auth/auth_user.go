package auth

import (
	"strings"

	"gorm.io/gorm"

	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type AuthUserRepo interface {
	Create(dbc dbctx.Context, creds *types.AuthUser) (*types.AuthUser, error)
	// GetByUsername loads credentials with the bound app user, or returns
	// gorm.ErrRecordNotFound.
	GetByUsername(dbc dbctx.Context, username string) (*types.AuthUser, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
}

type authUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthUserRepo(db *gorm.DB, baseLog *logger.Logger) AuthUserRepo {
	return &authUserRepo{
		db:  db,
		log: baseLog.With("repo", "AuthUserRepo"),
	}
}

func (r *authUserRepo) Create(dbc dbctx.Context, creds *types.AuthUser) (*types.AuthUser, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.AuthUser{
		Username:     strings.TrimSpace(creds.Username),
		PasswordHash: creds.PasswordHash,
		AppUserID:    creds.AppUserID,
	}
	if err := transaction.WithContext(dbc.Ctx).Omit("AppUser").Create(row).Error; err != nil {
		return nil, err
	}
	row.AppUser = creds.AppUser
	return row, nil
}

func (r *authUserRepo) GetByUsername(dbc dbctx.Context, username string) (*types.AuthUser, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.AuthUser
	if err := transaction.WithContext(dbc.Ctx).
		Preload("AppUser").
		Where("username = ?", strings.TrimSpace(username)).
		First(&out).Error; err != nil {
		return nil, err
	}
	if out.AppUser == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &out, nil
}

func (r *authUserRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.AuthUser{}).
		Where("username = ?", strings.TrimSpace(username)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
