// Package shopping aggregates planned meals into a consolidated
// ingredient shopping list.
package shopping

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// IngredientSource resolves a meal name to its ingredient list. It is
// satisfied by meal.Repository.
type IngredientSource interface {
	IDByName(ctx context.Context, name string) (int64, error)
	IngredientsByMealID(ctx context.Context, mealID int64) ([]string, error)
}

// Item is one distinct ingredient and the total quantity required for
// the planned week.
type Item struct {
	Name     string
	Quantity int
}

// List is an ordered ingredient -> quantity mapping. Items keep the
// order in which their ingredient was first seen.
type List struct {
	Items []Item
}

// Aggregate builds a shopping list from a flattened sequence of planned
// meal names. Each meal's ingredients contribute the meal's occurrence
// count to the ingredient's quantity, summing across meals that share
// an ingredient.
func Aggregate(ctx context.Context, mealNames []string, src IngredientSource) (*List, error) {
	// Meal name -> occurrence count, in first-occurrence order.
	counts := map[string]int{}
	order := []string{}
	for _, name := range mealNames {
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	list := &List{}
	index := map[string]int{}
	for _, name := range order {
		id, err := src.IDByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve planned meal %q: %w", name, err)
		}
		ingredients, err := src.IngredientsByMealID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch ingredients for %q: %w", name, err)
		}
		for _, ingredient := range ingredients {
			if i, seen := index[ingredient]; seen {
				list.Items[i].Quantity += counts[name]
			} else {
				index[ingredient] = len(list.Items)
				list.Items = append(list.Items, Item{Name: ingredient, Quantity: counts[name]})
			}
		}
	}
	return list, nil
}

// Format renders the list, one ingredient per line. Quantity one prints
// the bare name; anything else appends " x<quantity>". Legacy mode
// reproduces the original output, where multi-quantity lines were
// written without a trailing newline.
func (l *List) Format(legacy bool) string {
	var sb strings.Builder
	for _, item := range l.Items {
		if item.Quantity == 1 {
			sb.WriteString(item.Name)
			sb.WriteString("\n")
			continue
		}
		fmt.Fprintf(&sb, "%s x%d", item.Name, item.Quantity)
		if !legacy {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// WriteFile writes the formatted list to path, overwriting any existing
// file.
func (l *List) WriteFile(path string, legacy bool) error {
	if err := os.WriteFile(path, []byte(l.Format(legacy)), 0644); err != nil {
		return fmt.Errorf("failed to write shopping list: %w", err)
	}
	return nil
}
