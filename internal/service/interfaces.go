package service

import (
	"context"

	"github.com/pageza/cookbook/backend/internal/model"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uint, recipe *model.Recipe) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uint) error
}

var _ IRecipeService = (*RecipeService)(nil)
