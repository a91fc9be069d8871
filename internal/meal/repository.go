package meal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no stored meal.
var ErrNotFound = errors.New("meal not found")

// Repository is a database-backed repository for meals and their ingredients.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Insert stores a meal row and one ingredient row per ingredient in a
// single transaction.
func (r *Repository) Insert(ctx context.Context, m Meal) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO meals (category, meal) VALUES (?, ?)", string(m.Category), m.Name)
	if err != nil {
		return fmt.Errorf("failed to insert meal %q: %w", m.Name, err)
	}

	mealID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read generated meal id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO ingredients (ingredient, meal_id) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare ingredient insert: %w", err)
	}
	defer stmt.Close()

	for _, ingredient := range m.Ingredients {
		if _, err := stmt.ExecContext(ctx, ingredient, mealID); err != nil {
			return fmt.Errorf("failed to insert ingredient %q: %w", ingredient, err)
		}
	}

	return tx.Commit()
}

// ListNames returns all meal names in the given category, sorted
// lexicographically. An unused category yields an empty slice.
func (r *Repository) ListNames(ctx context.Context, category Category) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT meal FROM meals WHERE category = ? ORDER BY meal", string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list meal names for %s: %w", category, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan meal name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListWithIDs returns (id, name) pairs for the category in ascending id
// order, i.e. insertion order.
func (r *Repository) ListWithIDs(ctx context.Context, category Category) ([]Meal, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT meal_id, meal FROM meals WHERE category = ? ORDER BY meal_id", string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list meals for %s: %w", category, err)
	}
	defer rows.Close()

	meals := []Meal{}
	for rows.Next() {
		m := Meal{Category: category}
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

// IDByName returns the id of the first stored meal whose name matches
// exactly. The match is case-sensitive. Returns ErrNotFound when no
// row matches.
func (r *Repository) IDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT meal_id FROM meals WHERE meal = ? ORDER BY meal_id LIMIT 1", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("meal %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up meal %q: %w", name, err)
	}
	return id, nil
}

// IngredientsByMealID returns the ingredient names for a meal in
// storage order.
func (r *Repository) IngredientsByMealID(ctx context.Context, mealID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT ingredient FROM ingredients WHERE meal_id = ? ORDER BY ingredient_id", mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients for meal %d: %w", mealID, err)
	}
	defer rows.Close()

	ingredients := []string{}
	for rows.Next() {
		var ingredient string
		if err := rows.Scan(&ingredient); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, rows.Err()
}
