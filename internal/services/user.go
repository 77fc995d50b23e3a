package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mthstanley/stockpot/internal/data/aggregates"
	"github.com/mthstanley/stockpot/internal/data/repos"
	types "github.com/mthstanley/stockpot/internal/domain"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type UserService interface {
	Get(ctx context.Context, id int) (*types.User, error)
	// Register creates the user and its login credentials together.
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
}

type RegisterInput struct {
	Name     string
	Username string
	Password string
}

type userService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	authRepo   repos.AuthUserRepo
	bcryptCost int
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, authRepo repos.AuthUserRepo, bcryptCost int) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		db:         db,
		log:        log.With("service", "UserService"),
		userRepo:   userRepo,
		authRepo:   authRepo,
		bcryptCost: bcryptCost,
	}
}

func (us *userService) Get(ctx context.Context, id int) (*types.User, error) {
	const op = "UserService.Get"
	u, err := us.userRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("user with id `%d` not found", id), err)
	}
	if err != nil {
		return nil, opaqueInternal(us.log, op, err)
	}
	return u, nil
}

func (us *userService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	const op = "UserService.Register"
	name := strings.TrimSpace(in.Name)
	username := strings.TrimSpace(in.Username)
	switch {
	case name == "":
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "name is required", nil)
	case username == "":
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "username is required", nil)
	case in.Password == "":
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "password is required", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), us.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "password is too long", err)
	}
	if err != nil {
		return nil, opaqueInternal(us.log, op, err)
	}

	var created *types.User
	txErr := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		taken, err := us.authRepo.UsernameExists(dbc, username)
		if err != nil {
			return err
		}
		if taken {
			return aggregates.ConflictError(fmt.Sprintf("username `%s` is already taken", username))
		}
		users, err := us.userRepo.Create(dbc, []*types.User{{Name: name}})
		if err != nil {
			return err
		}
		if _, err := us.authRepo.Create(dbc, &types.AuthUser{
			Username:     username,
			PasswordHash: string(hash),
			AppUserID:    users[0].ID,
			AppUser:      users[0],
		}); err != nil {
			return err
		}
		created = users[0]
		return nil
	})
	if txErr != nil {
		mapped := aggregates.MapError(op, txErr)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			return nil, domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("username `%s` is already taken", username), txErr)
		}
		return nil, surface(us.log, op, mapped)
	}
	us.log.Info("User registered", "user_id", created.ID, "username", username)
	return created, nil
}
