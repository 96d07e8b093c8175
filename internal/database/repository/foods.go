package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/renatomh/gorestaurant-web/internal/food"
)

// ErrNotFound is returned when no food row has the requested id.
var ErrNotFound = errors.New("food not found")

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// FoodRepo handles foods.
type FoodRepo struct {
	db DBTX
}

func NewFoodRepo(db DBTX) *FoodRepo { return &FoodRepo{db: db} }

const foodColumns = `id, name, image, price, description, available`

func (r *FoodRepo) List(ctx context.Context) ([]food.Food, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+foodColumns+` FROM foods ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []food.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FoodRepo) Get(ctx context.Context, id int64) (food.Food, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = ?`, id)
	f, err := scanFood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return food.Food{}, fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	return f, err
}

// Insert stores f under a fresh id and returns the stored row.
func (r *FoodRepo) Insert(ctx context.Context, f food.Food) (food.Food, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO foods(name, image, price, description, available, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, f.Name, f.Image, f.Price, f.Description, f.Available)
	if err != nil {
		return food.Food{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return food.Food{}, err
	}
	f.ID = id
	return f, nil
}

// Update overwrites every field of the row at id. The id itself never changes.
func (r *FoodRepo) Update(ctx context.Context, id int64, f food.Food) (food.Food, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE foods SET name = ?, image = ?, price = ?, description = ?, available = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`, f.Name, f.Image, f.Price, f.Description, f.Available, id)
	if err != nil {
		return food.Food{}, err
	}
	if err := requireRow(res, id); err != nil {
		return food.Food{}, err
	}
	f.ID = id
	return f, nil
}

func (r *FoodRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFood(s rowScanner) (food.Food, error) {
	var f food.Food
	err := s.Scan(&f.ID, &f.Name, &f.Image, &f.Price, &f.Description, &f.Available)
	return f, err
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	return nil
}
