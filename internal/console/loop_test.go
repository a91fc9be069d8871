package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meal-planner/internal/database"
	"meal-planner/internal/meal"
	"meal-planner/internal/planner"
)

func newTestLoop(t *testing.T, input string) (*Loop, *planner.Service, *bytes.Buffer) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "meals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	service := planner.NewService(meal.NewRepository(db.SQL), planner.NewPlanRepository(db.SQL))
	out := &bytes.Buffer{}
	loop := NewLoop(service, nil, zap.NewNop(), strings.NewReader(input), out, false)
	return loop, service, out
}

func TestExit(t *testing.T) {
	loop, _, out := newTestLoop(t, "exit\n")

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), menuPrompt)
	assert.Contains(t, out.String(), "Bye!")
}

func TestUnknownCommandIgnored(t *testing.T) {
	loop, _, out := newTestLoop(t, "delete\nexit\n")

	require.NoError(t, loop.Run(context.Background()))

	// The menu is shown again with no error text in between.
	assert.Equal(t, 2, strings.Count(out.String(), menuPrompt))
	assert.NotContains(t, out.String(), "Wrong")
}

func TestAddFlow(t *testing.T) {
	input := strings.Join([]string{
		"add",
		"snack",        // invalid category, reprompted
		"breakfast",
		"Tom4to",       // invalid name, reprompted
		"",             // blank name, reprompted
		"Tomato Omelette",
		"tomato, egg4", // invalid ingredient, whole list reprompted
		"tomato, egg",
		"exit",
	}, "\n") + "\n"

	loop, service, out := newTestLoop(t, input)
	require.NoError(t, loop.Run(context.Background()))

	assert.Contains(t, out.String(), wrongCategoryPrompt)
	assert.Contains(t, out.String(), wrongFormatPrompt)
	assert.Contains(t, out.String(), "The meal has been added!")

	details, err := service.MealsWithIngredients(context.Background(), meal.Breakfast)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Tomato Omelette", details[0].Name)
	assert.Equal(t, []string{"tomato", "egg"}, details[0].Ingredients)
}

func TestShowEmptyCategory(t *testing.T) {
	loop, _, out := newTestLoop(t, "show\nlunch\nexit\n")

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), "No meals found.")
}

func TestShowListsMealsWithIngredients(t *testing.T) {
	loop, service, out := newTestLoop(t, "show\ndinner\nexit\n")
	require.NoError(t, service.AddMeal(context.Background(), meal.Dinner, "Pasta", []string{"pasta", "water"}))

	require.NoError(t, loop.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Category: dinner")
	assert.Contains(t, text, "Name: Pasta")
	assert.Contains(t, text, "Ingredients:\npasta\nwater\n")
}

func TestSaveWithoutPlan(t *testing.T) {
	loop, _, out := newTestLoop(t, "save\nexit\n")

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), "Unable to save. Plan your meals first.")
	// No filename prompt when there is nothing to save.
	assert.NotContains(t, out.String(), "Input a filename:")
}

func TestPlanAndSave(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "shopping.txt")

	// One choice per category per day, with a wrong pick on Monday.
	lines := []string{"plan", "Waffles"}
	lines = append(lines, "Eggs", "Soup", "Pasta")
	for i := 0; i < 6; i++ {
		lines = append(lines, "Eggs", "Soup", "Pasta")
	}
	lines = append(lines, "save", listPath, "exit")
	input := strings.Join(lines, "\n") + "\n"

	loop, service, out := newTestLoop(t, input)
	ctx := context.Background()
	require.NoError(t, service.AddMeal(ctx, meal.Breakfast, "Eggs", []string{"Egg"}))
	require.NoError(t, service.AddMeal(ctx, meal.Lunch, "Soup", []string{"Water", "Salt"}))
	require.NoError(t, service.AddMeal(ctx, meal.Dinner, "Pasta", []string{"Water", "Pasta"}))

	require.NoError(t, loop.Run(ctx))

	text := out.String()
	assert.Contains(t, text, "Choose the breakfast for Monday from the list above:")
	assert.Contains(t, text, wrongChoicePrompt)
	for _, day := range planner.Weekdays {
		assert.Contains(t, text, "Yeah! We planned the meals for "+day+".")
	}
	assert.Contains(t, text, "Breakfast: Eggs")
	assert.Contains(t, text, "Saved!")

	// One stored row per day.
	entries, err := service.PlanEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 7)

	data, err := os.ReadFile(listPath)
	require.NoError(t, err)
	assert.Equal(t, "Egg x7\nWater x14\nSalt x7\nPasta x7\n", string(data))
}
