package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/http/response"
	"github.com/mthstanley/stockpot/internal/platform/ctxutil"
	"github.com/mthstanley/stockpot/internal/platform/logger"
	"github.com/mthstanley/stockpot/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(log *logger.Logger, userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
		authService: authService,
	}
}

type userResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func toUserResponse(u *types.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name}
}

// GET /user/:id
func (uh *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := uh.userService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, uh.log, err)
		return
	}
	response.RespondOK(c, toUserResponse(u))
}

// POST /user
// body: { "name": "...", "username": "...", "password": "..." }
func (uh *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := uh.userService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.RespondAggregateError(c, uh.log, err)
		return
	}
	response.RespondCreated(c, toUserResponse(u))
}

// GET /user/auth
func (uh *UserHandler) GetAuthUser(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		response.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userResponse{ID: rd.UserID, Name: rd.UserName}})
}

// POST /user/token
func (uh *UserHandler) CreateToken(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.Username == "" {
		response.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token, err := uh.authService.IssueToken(c.Request.Context(), &types.AuthUser{
		Username:  rd.Username,
		AppUserID: rd.UserID,
	})
	if err != nil {
		response.RespondAggregateError(c, uh.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
