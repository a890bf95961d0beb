package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/internal/model"
)

// ErrRecipeNotFound is returned when no recipe has the requested id
var ErrRecipeNotFound = errors.New("recipe not found")

// editableColumns are the columns an update replaces. id and view_count are
// never written by UpdateRecipe.
var editableColumns = []string{"name", "cooking_time", "ingredients", "description"}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe inserts recipe and fills in the id assigned by the store
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.ID = 0
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// ListRecipes returns every recipe, most viewed first and quickest first among
// equally viewed ones.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	recipes := []*model.Recipe{}
	err := s.db.WithContext(ctx).
		Order("view_count DESC").
		Order("cooking_time ASC").
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe returns the recipe with the given id after counting the view.
// The increment is a single UPDATE so concurrent readers never lose a view.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Recipe{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return tx.First(&recipe, id).Error
	})
	if err != nil {
		return nil, wrapNotFound(err, "failed to get recipe")
	}
	return &recipe, nil
}

// UpdateRecipe replaces the editable fields of the recipe with the given id
// with those of update, including zero values.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, update *model.Recipe) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, id).Error; err != nil {
			return err
		}
		err := tx.Model(&recipe).
			Select(editableColumns).
			Updates(&model.Recipe{
				Name:        update.Name,
				CookingTime: update.CookingTime,
				Ingredients: update.Ingredients,
				Description: update.Description,
			}).Error
		if err != nil {
			return err
		}
		return tx.First(&recipe, id).Error
	})
	if err != nil {
		return nil, wrapNotFound(err, "failed to update recipe")
	}
	return &recipe, nil
}

// DeleteRecipe permanently removes the recipe with the given id
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Recipe{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// CountRecipes returns the number of stored recipes
func (s *RecipeService) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

func wrapNotFound(err error, msg string) error {
	if errors.Is(err, ErrRecipeNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecipeNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
