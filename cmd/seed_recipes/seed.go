package main

import (
	"context"
	"fmt"
	"log"

	"github.com/pageza/cookbook/backend/internal/model"
)

// recipeStore is the part of the recipe service the seeder needs
type recipeStore interface {
	CountRecipes(ctx context.Context) (int64, error)
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
}

var sampleRecipes = []model.Recipe{
	{
		Name:        "Borscht",
		CookingTime: 120,
		Ingredients: "beets, cabbage, potatoes, carrots, onion, beef broth, sour cream, dill",
		Description: "Simmer the broth, add vegetables one by one and finish with sour cream and dill.",
	},
	{
		Name:        "Syrniki",
		CookingTime: 25,
		Ingredients: "farmer's cheese, egg, flour, sugar, salt",
		Description: "Mix, shape small patties, dust with flour and fry until golden on both sides.",
	},
	{
		Name:        "Olivier salad",
		CookingTime: 45,
		Ingredients: "potatoes, carrots, eggs, pickles, peas, boiled sausage, mayonnaise",
		Description: "Boil and dice everything to pea size, then dress with mayonnaise.",
	},
	{
		Name:        "Blini",
		CookingTime: 40,
		Ingredients: "milk, eggs, flour, sugar, salt, butter",
		Description: "Whisk a thin batter, rest it for 15 minutes and fry very thin pancakes.",
	},
	{
		Name:        "Pelmeni",
		CookingTime: 90,
		Ingredients: "flour, water, egg, minced pork and beef, onion, black pepper",
		Description: "Roll the dough thin, fill with seasoned mince, seal and boil until they float.",
	},
	{
		Name:        "Kasha with mushrooms",
		CookingTime: 35,
		Ingredients: "buckwheat, mushrooms, onion, butter, salt",
		Description: "Toast the buckwheat, cook it in salted water and fold in fried mushrooms and onion.",
	},
}

// seed inserts the sample recipes unless the table already holds data and
// force is false. It returns how many recipes were inserted.
func seed(ctx context.Context, store recipeStore, force bool) (int, error) {
	count, err := store.CountRecipes(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 && !force {
		log.Printf("Skipping seed: %d recipes already present (use -force to insert anyway)", count)
		return 0, nil
	}

	for i := range sampleRecipes {
		recipe := sampleRecipes[i]
		if _, err := store.CreateRecipe(ctx, &recipe); err != nil {
			return i, fmt.Errorf("recipe %q: %w", recipe.Name, err)
		}
	}
	return len(sampleRecipes), nil
}
