package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/types"
)

const (
	detailNotFound = "Recipe not found"
	detailDeleted  = "Recipe deleted successfully"
	detailInternal = "Internal Server Error"
)

// RecipeHandler translates between the HTTP API and the recipe service
type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	types.RegisterJSONFieldNames()
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/", h.CreateRecipe)
		recipes.GET("/", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeIn
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.ValidationErrorResponse{Detail: types.BodyValidationErrors(err)})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), req.ToModel())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeOut(recipe))
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeOutList(recipes))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeOut(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.RecipeUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.ValidationErrorResponse{Detail: types.BodyValidationErrors(err)})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, req.ToModel())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewRecipeOut(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DetailResponse{Detail: detailDeleted})
}

func (h *RecipeHandler) respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, types.DetailResponse{Detail: detailNotFound})
		return
	}

	_ = c.Error(err)
	log.Printf("Error [%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, types.DetailResponse{Detail: detailInternal})
}

// parseID reads the :id path parameter. Anything that is not an integer is a
// 422; an integer that cannot name a stored row (below 1 or out of range) is
// a 404, same as an unknown id.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) || (err == nil && id < 1) {
		c.JSON(http.StatusNotFound, types.DetailResponse{Detail: detailNotFound})
		return 0, false
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.ValidationErrorResponse{Detail: types.PathIntegerError("id")})
		return 0, false
	}
	return uint(id), true
}
