package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/mthstanley/stockpot/internal/domain"
	"github.com/mthstanley/stockpot/internal/http/middleware"
	"github.com/mthstanley/stockpot/internal/http/response"
	"github.com/mthstanley/stockpot/internal/platform/logger"
	"github.com/mthstanley/stockpot/internal/services"
)

type RecipeHandler struct {
	log           *logger.Logger
	recipeService services.RecipeService
}

func NewRecipeHandler(log *logger.Logger, recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		log:           log.With("handler", "RecipeHandler"),
		recipeService: recipeService,
	}
}

// GET /recipe
func (rh *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := rh.recipeService.List(c.Request.Context())
	if err != nil {
		response.RespondAggregateError(c, rh.log, err)
		return
	}
	if recipes == nil {
		recipes = []*types.Recipe{}
	}
	response.RespondOK(c, recipes)
}

// GET /recipe/:id
func (rh *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rec, err := rh.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAggregateError(c, rh.log, err)
		return
	}
	response.RespondOK(c, rec)
}

// POST /recipe
func (rh *RecipeHandler) CreateRecipe(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	in, ok := bindRecipe(c)
	if !ok {
		return
	}
	rec, err := rh.recipeService.Create(c.Request.Context(), in, actor)
	if err != nil {
		response.RespondAggregateError(c, rh.log, err)
		return
	}
	response.RespondCreated(c, rec)
}

// POST /recipe/:id
func (rh *RecipeHandler) UpdateRecipe(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := bindRecipe(c)
	if !ok {
		return
	}
	if in.ID != 0 && in.ID != id {
		response.RespondError(c, http.StatusBadRequest, fmt.Sprintf("body id `%d` does not match path id `%d`", in.ID, id))
		return
	}
	in.ID = id
	rec, err := rh.recipeService.Update(c.Request.Context(), in, actor)
	if err != nil {
		response.RespondAggregateError(c, rh.log, err)
		return
	}
	response.RespondOK(c, rec)
}

// DELETE /recipe/:id
func (rh *RecipeHandler) DeleteRecipe(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rec, err := rh.recipeService.Delete(c.Request.Context(), id, actor)
	if err != nil {
		response.RespondAggregateError(c, rh.log, err)
		return
	}
	response.RespondOK(c, rec)
}

func bindRecipe(c *gin.Context) (*types.Recipe, bool) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return req.toDomain(), true
}

func requireActor(c *gin.Context) (types.User, bool) {
	actor, ok := middleware.Actor(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	}
	return actor, ok
}
