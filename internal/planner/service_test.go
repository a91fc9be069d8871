package planner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/database"
	"meal-planner/internal/meal"
	"meal-planner/internal/shopping"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "meals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewService(meal.NewRepository(db.SQL), NewPlanRepository(db.SQL))
}

func seedMeals(t *testing.T, s *Service) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.AddMeal(ctx, meal.Breakfast, "Eggs", []string{"Egg"}))
	require.NoError(t, s.AddMeal(ctx, meal.Lunch, "Soup", []string{"Water", "Salt"}))
	require.NoError(t, s.AddMeal(ctx, meal.Dinner, "Pasta", []string{"Water", "Pasta"}))
}

func fullWeek() []DayChoice {
	week := make([]DayChoice, 0, len(Weekdays))
	for _, day := range Weekdays {
		week = append(week, DayChoice{
			Day:       day,
			Breakfast: "Eggs",
			Lunch:     "Soup",
			Dinner:    "Pasta",
		})
	}
	return week
}

func TestSaveWeekStoresOneRowPerDay(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	seedMeals(t, s)

	require.NoError(t, s.SaveWeek(ctx, fullWeek()))

	entries, err := s.PlanEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, len(Weekdays))
	for i, day := range Weekdays {
		assert.Equal(t, day, entries[i].Day)
		assert.Equal(t, "Eggs", entries[i].Breakfast)
		assert.Equal(t, "Soup", entries[i].Lunch)
		assert.Equal(t, "Pasta", entries[i].Dinner)
	}
}

func TestShoppingListBeforePlanning(t *testing.T) {
	s := newTestService(t)
	seedMeals(t, s)

	_, err := s.ShoppingList(context.Background())
	assert.True(t, errors.Is(err, ErrEmptyPlan))
}

func TestShoppingListAggregation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	seedMeals(t, s)

	// Two days of identical choices.
	week := []DayChoice{
		{Day: "Monday", Breakfast: "Eggs", Lunch: "Soup", Dinner: "Pasta"},
		{Day: "Tuesday", Breakfast: "Eggs", Lunch: "Soup", Dinner: "Pasta"},
	}
	require.NoError(t, s.SaveWeek(ctx, week))

	list, err := s.ShoppingList(ctx)
	require.NoError(t, err)

	want := []shopping.Item{
		{Name: "Egg", Quantity: 2},
		{Name: "Water", Quantity: 4},
		{Name: "Salt", Quantity: 2},
		{Name: "Pasta", Quantity: 2},
	}
	assert.Equal(t, want, list.Items)
}

func TestOptionsAreSortedPerCategory(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	require.NoError(t, s.AddMeal(ctx, meal.Breakfast, "Porridge", nil))
	require.NoError(t, s.AddMeal(ctx, meal.Breakfast, "Eggs", nil))

	opts, err := s.Options(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eggs", "Porridge"}, opts.Breakfast)
	assert.Empty(t, opts.Lunch)
	assert.Empty(t, opts.Dinner)
}

func TestMealsWithIngredients(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	seedMeals(t, s)

	details, err := s.MealsWithIngredients(ctx, meal.Lunch)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Soup", details[0].Name)
	assert.Equal(t, []string{"Water", "Salt"}, details[0].Ingredients)
}
