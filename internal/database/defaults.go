package database

import (
	"context"
	"database/sql"

	"github.com/renatomh/gorestaurant-web/internal/database/repository"
	"github.com/renatomh/gorestaurant-web/internal/food"
)

// SeedDefaults fills an empty foods table with the starter menu.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewFoodRepo(db)
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := []food.Food{
		{
			Name:        "Ao molho",
			Image:       "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food1.png",
			Price:       "19.90",
			Description: "Macarrão ao molho branco, fughi e cheiro verde das montanhas.",
			Available:   true,
		},
		{
			Name:        "Veggie",
			Image:       "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food2.png",
			Price:       "21.90",
			Description: "Macarrão com pimentão, ervilha e ervas finas colhidas no himalaia.",
			Available:   true,
		},
		{
			Name:        "A la Camarón",
			Image:       "https://storage.googleapis.com/golden-wind/bootcamp-gostack/desafio-food/food3.png",
			Price:       "25.90",
			Description: "Macarrão com vegetais de primeira linha e camarão dos 7 mares.",
			Available:   true,
		},
	}
	return WithTx(db, func(tx *sql.Tx) error {
		txRepo := repository.NewFoodRepo(tx)
		for _, f := range defaults {
			if _, err := txRepo.Insert(ctx, f); err != nil {
				return err
			}
		}
		return nil
	})
}
