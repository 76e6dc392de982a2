package seed

import (
	"context"
	"log"
	"time"

	"tastygram/db"
	"tastygram/models"

	"go.mongodb.org/mongo-driver/bson"
)

var starterRecipes = []models.Recipe{
	{
		Title:       "Spaghetti Carbonara",
		Description: "Classic Italian pasta with eggs, cheese, pancetta, and pepper.",
		Category:    "Italian",
		Ingredients: []string{"Spaghetti", "Eggs", "Pancetta", "Parmesan Cheese", "Black Pepper"},
		Steps:       "Cook pasta. Fry pancetta. Mix eggs and cheese. Combine all.",
		Author:      "Chef Luigi",
	},
	{
		Title:       "Butter Chicken",
		Description: "Rich and creamy Indian chicken curry.",
		Category:    "Indian",
		Ingredients: []string{"Chicken", "Butter", "Tomatoes", "Cream", "Spices"},
		Steps:       "Marinate chicken. Cook sauce. Combine and simmer.",
		Author:      "Chef Priya",
	},
	{
		Title:       "Samp and Braai Meat",
		Description: "South African traditional samp served with grilled braai meat.",
		Category:    "South African",
		Ingredients: []string{"Samp", "Beef", "Spices", "Onions", "Tomatoes"},
		Steps:       "Cook samp until soft. Grill meat. Serve together.",
		Author:      "Chef Thabo",
	},
	{
		Title:       "Tacos",
		Description: "Traditional Mexican tacos with fresh toppings.",
		Category:    "Mexican",
		Ingredients: []string{"Taco shells", "Beef", "Lettuce", "Tomatoes", "Cheese", "Salsa"},
		Steps:       "Cook beef. Assemble tacos with toppings. Serve.",
		Author:      "Chef Miguel",
	},
	{
		Title:       "Milk Tart",
		Description: "Classic South African sweet milk tart.",
		Category:    "Desserts",
		Ingredients: []string{"Milk", "Sugar", "Flour", "Eggs", "Pastry crust", "Cinnamon"},
		Steps:       "Prepare crust. Cook milk filling. Bake and sprinkle with cinnamon.",
		Author:      "Chef Anna",
	},
	{
		Title:       "Malva Pudding",
		Description: "Traditional South African dessert, spongy and sweet.",
		Category:    "Desserts",
		Ingredients: []string{"Flour", "Sugar", "Eggs", "Butter", "Apricot jam", "Cream"},
		Steps:       "Mix ingredients. Bake. Serve with cream or custard.",
		Author:      "Chef Marco",
	},
	{
		Title:       "Tiramisu",
		Description: "Italian dessert with mascarpone, coffee, and cocoa.",
		Category:    "Desserts",
		Ingredients: []string{"Mascarpone", "Coffee", "Ladyfingers", "Sugar", "Cocoa powder", "Eggs"},
		Steps:       "Layer coffee-soaked ladyfingers and mascarpone mixture. Dust with cocoa powder. Chill before serving.",
		Author:      "Chef Luigi",
	},
	{
		Title:       "Sushi",
		Description: "Japanese sushi rolls with rice and fresh fish.",
		Category:    "Other",
		Ingredients: []string{"Sushi rice", "Nori", "Raw fish", "Avocado", "Cucumber", "Soy sauce"},
		Steps:       "Prepare rice. Roll sushi with fillings. Slice and serve.",
		Author:      "Chef Sato",
	},
}

// Run inserts the starter catalog when the recipes collection is empty.
func Run(ctx context.Context) error {
	count, err := db.RecipeCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("seed: %d recipes already present, skipping", count)
		return nil
	}

	docs := make([]interface{}, 0, len(starterRecipes))
	now := time.Now()
	for i, recipe := range starterRecipes {
		// Stagger timestamps so "latest" ordering is stable.
		recipe.CreatedAt = now.Add(time.Duration(i-len(starterRecipes)) * time.Minute)
		docs = append(docs, recipe)
	}

	if _, err := db.RecipeCollection.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("seed: inserted %d starter recipes", len(docs))
	return nil
}
