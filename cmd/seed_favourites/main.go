package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/pageza/alchemorsel-favourites/backend/config"
	"github.com/pageza/alchemorsel-favourites/backend/internal/database"
	"github.com/pageza/alchemorsel-favourites/backend/internal/events"
	"github.com/pageza/alchemorsel-favourites/backend/internal/model"
	"github.com/pageza/alchemorsel-favourites/backend/internal/service"
)

type sampleRecipe struct {
	RecipeID int64
	Title    string
	Image    string
	CookTime string
	Servings string
}

var sampleRecipes = []sampleRecipe{
	{52772, "Teriyaki Chicken Casserole", "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg", "45 minutes", "4"},
	{52977, "Corba", "https://www.themealdb.com/images/media/meals/58oia61564916529.jpg", "30 minutes", "4"},
	{53060, "Burek", "https://www.themealdb.com/images/media/meals/tkxquw1628771028.jpg", "1 hour", "6"},
	{52804, "Poutine", "https://www.themealdb.com/images/media/meals/uuyrrx1487327597.jpg", "25 minutes", "2"},
	{52844, "Lasagne", "https://www.themealdb.com/images/media/meals/wtsvxx1511296896.jpg", "1 hour 30 minutes", "6"},
}

func main() {
	userID := flag.String("user", "demo-user", "user id to seed favourites for")
	reset := flag.Bool("reset", false, "remove the sample favourites for the user before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Seeding bypasses the cache and the broker; the API rebuilds the cached
	// list on the next read once its TTL expires.
	favourites := service.NewFavouriteService(db, nil, events.NopPublisher{})
	ctx := context.Background()

	if *reset {
		for _, r := range sampleRecipes {
			removed, err := favourites.RemoveFavourite(ctx, *userID, r.RecipeID)
			if err != nil && !errors.Is(err, service.ErrFavouriteNotFound) {
				log.Fatalf("Failed to remove recipe %d: %v", r.RecipeID, err)
			}
			if len(removed) > 0 {
				log.Printf("Removed %d favourite(s) for recipe %d", len(removed), r.RecipeID)
			}
		}
	}

	for _, r := range sampleRecipes {
		image := r.Image
		fav, err := favourites.AddFavourite(ctx, &model.Favourite{
			UserID:   *userID,
			RecipeID: r.RecipeID,
			Title:    r.Title,
			Image:    &image,
			CookTime: model.NewText(r.CookTime),
			Servings: model.NewText(r.Servings),
		})
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", r.Title, err)
		}
		log.Printf("Seeded favourite %d: %s", fav.ID, fav.Title)
	}

	log.Printf("Seeded %d favourites for user %s", len(sampleRecipes), *userID)
}
