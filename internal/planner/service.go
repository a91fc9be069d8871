package planner

import (
	"context"
	"errors"
	"fmt"

	"meal-planner/internal/meal"
	"meal-planner/internal/shopping"
)

// ErrEmptyPlan is returned when a shopping list is requested before any
// week has been planned.
var ErrEmptyPlan = errors.New("no plan stored")

// MealDetail is a meal together with its ingredients, for display.
type MealDetail struct {
	Name        string
	Ingredients []string
}

// Service orchestrates the planner's user-facing operations over the
// meal and plan repositories.
type Service struct {
	meals *meal.Repository
	plans *PlanRepository
}

// NewService creates a new Service.
func NewService(meals *meal.Repository, plans *PlanRepository) *Service {
	return &Service{meals: meals, plans: plans}
}

// AddMeal stores a meal with its ingredients.
func (s *Service) AddMeal(ctx context.Context, category meal.Category, name string, ingredients []string) error {
	return s.meals.Insert(ctx, meal.Meal{
		Category:    category,
		Name:        name,
		Ingredients: ingredients,
	})
}

// MealsWithIngredients returns the category's meals in insertion order,
// each with its ingredients. Ingredients are fetched per meal, which is
// fine at this data scale.
func (s *Service) MealsWithIngredients(ctx context.Context, category meal.Category) ([]MealDetail, error) {
	meals, err := s.meals.ListWithIDs(ctx, category)
	if err != nil {
		return nil, err
	}

	details := make([]MealDetail, 0, len(meals))
	for _, m := range meals {
		ingredients, err := s.meals.IngredientsByMealID(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		details = append(details, MealDetail{Name: m.Name, Ingredients: ingredients})
	}
	return details, nil
}

// Options fetches the three sorted option lists for a planning run.
func (s *Service) Options(ctx context.Context) (Options, error) {
	var o Options
	var err error
	if o.Breakfast, err = s.meals.ListNames(ctx, meal.Breakfast); err != nil {
		return Options{}, err
	}
	if o.Lunch, err = s.meals.ListNames(ctx, meal.Lunch); err != nil {
		return Options{}, err
	}
	if o.Dinner, err = s.meals.ListNames(ctx, meal.Dinner); err != nil {
		return Options{}, err
	}
	return o, nil
}

// SaveWeek persists exactly one plan row per chosen day, in the order
// given.
func (s *Service) SaveWeek(ctx context.Context, week []DayChoice) error {
	for _, choice := range week {
		entry := Entry{
			Day:       choice.Day,
			Breakfast: choice.Breakfast,
			Lunch:     choice.Lunch,
			Dinner:    choice.Dinner,
		}
		if err := s.plans.Insert(ctx, entry); err != nil {
			return fmt.Errorf("failed to save plan for %s: %w", choice.Day, err)
		}
	}
	return nil
}

// PlanEntries returns every stored plan row.
func (s *Service) PlanEntries(ctx context.Context) ([]Entry, error) {
	return s.plans.Entries(ctx)
}

// ShoppingList flattens all stored plan rows and aggregates them into a
// shopping list. Returns ErrEmptyPlan when nothing has been planned.
func (s *Service) ShoppingList(ctx context.Context) (*shopping.List, error) {
	entries, err := s.plans.Entries(ctx)
	if err != nil {
		return nil, err
	}

	mealNames := make([]string, 0, len(entries)*3)
	for _, e := range entries {
		mealNames = append(mealNames, e.Breakfast, e.Lunch, e.Dinner)
	}
	if len(mealNames) == 0 {
		return nil, ErrEmptyPlan
	}

	return shopping.Aggregate(ctx, mealNames, s.meals)
}
