package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/http/response"
	"github.com/mthstanley/stockpot/internal/platform/ctxutil"
	"github.com/mthstanley/stockpot/internal/platform/logger"
	"github.com/mthstanley/stockpot/internal/services"
)

const invalidCredentials = "Invalid credentials"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireAuth accepts either a Bearer token or HTTP Basic credentials.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			creds, err := am.authService.Authenticate(c.Request.Context(), token)
			am.finish(c, creds, err)
			return
		}
		am.basic(c)
	}
}

// RequireBasic only accepts HTTP Basic credentials.
func (am *AuthMiddleware) RequireBasic() gin.HandlerFunc {
	return am.basic
}

func (am *AuthMiddleware) basic(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		response.AbortWithError(c, http.StatusUnauthorized, invalidCredentials)
		return
	}
	creds, err := am.authService.Validate(c.Request.Context(), username, password)
	am.finish(c, creds, err)
}

func (am *AuthMiddleware) finish(c *gin.Context, creds *types.AuthUser, err error) {
	if err != nil {
		response.RespondAggregateError(c, am.log, err)
		c.Abort()
		return
	}
	if creds == nil || creds.AppUserID == 0 {
		response.AbortWithError(c, http.StatusUnauthorized, invalidCredentials)
		return
	}
	rd := &ctxutil.RequestData{
		UserID:   creds.AppUserID,
		Username: creds.Username,
	}
	if creds.AppUser != nil {
		rd.UserName = creds.AppUser.Name
	}
	c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
	c.Next()
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:]), true
	}
	return "", false
}

// Actor returns the authenticated user for the request, if any.
func Actor(c *gin.Context) (types.User, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		return types.User{}, false
	}
	return types.User{ID: rd.UserID, Name: rd.UserName}, true
}
