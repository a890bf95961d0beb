package types

import (
	"github.com/pageza/cookbook/backend/internal/model"
)

// RecipeIn is the request body for creating a recipe. Fields are pointers so
// that zero values such as an empty description or a view count of 0 still
// count as present.
type RecipeIn struct {
	Name        *string `json:"name" binding:"required"`
	CookingTime *int    `json:"cooking_time" binding:"required"`
	Ingredients *string `json:"ingredients" binding:"required"`
	Description *string `json:"description" binding:"required"`
	ViewCount   *int    `json:"view_count" binding:"required"`
}

// ToModel converts a bound request into a row ready for insertion
func (r *RecipeIn) ToModel() *model.Recipe {
	return &model.Recipe{
		Name:        *r.Name,
		CookingTime: *r.CookingTime,
		Ingredients: *r.Ingredients,
		Description: *r.Description,
		ViewCount:   *r.ViewCount,
	}
}

// RecipeUpdate is the request body for replacing a recipe. It deliberately
// has no view_count or id; such keys in the body are ignored.
type RecipeUpdate struct {
	Name        *string `json:"name" binding:"required"`
	CookingTime *int    `json:"cooking_time" binding:"required"`
	Ingredients *string `json:"ingredients" binding:"required"`
	Description *string `json:"description" binding:"required"`
}

// ToModel returns the editable fields as a row. ID and ViewCount are left zero.
func (r *RecipeUpdate) ToModel() *model.Recipe {
	return &model.Recipe{
		Name:        *r.Name,
		CookingTime: *r.CookingTime,
		Ingredients: *r.Ingredients,
		Description: *r.Description,
	}
}

// RecipeOut is the response shape for a single recipe
type RecipeOut struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	CookingTime int    `json:"cooking_time"`
	Ingredients string `json:"ingredients"`
	Description string `json:"description"`
	ViewCount   int    `json:"view_count"`
}

// NewRecipeOut builds the response shape from a stored row
func NewRecipeOut(r *model.Recipe) RecipeOut {
	return RecipeOut{
		ID:          r.ID,
		Name:        r.Name,
		CookingTime: r.CookingTime,
		Ingredients: r.Ingredients,
		Description: r.Description,
		ViewCount:   r.ViewCount,
	}
}

// NewRecipeOutList builds the response shape for a list, never returning nil
// so that an empty table serializes as [].
func NewRecipeOutList(recipes []*model.Recipe) []RecipeOut {
	out := make([]RecipeOut, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, NewRecipeOut(r))
	}
	return out
}

// DetailResponse is the body of every non-validation error and of the delete
// confirmation.
type DetailResponse struct {
	Detail string `json:"detail"`
}
