package meal

import (
	"fmt"
	"regexp"
	"strings"
)

// Category partitions meals and plan slots.
type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
)

// Categories lists every valid category in menu order.
var Categories = []Category{Breakfast, Lunch, Dinner}

// Meal represents a stored meal with its ingredients.
type Meal struct {
	ID          int64
	Category    Category
	Name        string
	Ingredients []string
}

// Names and ingredients are restricted to letters and whitespace.
var namePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// ValidateName reports whether s is a usable meal or ingredient name:
// non-blank and containing only letters and whitespace.
func ValidateName(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return namePattern.MatchString(s)
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Breakfast, Lunch, Dinner:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown meal category %q", s)
}

// ParseIngredients splits a comma-delimited list into trimmed tokens.
// It fails if any token is blank or contains anything beyond letters
// and whitespace.
func ParseIngredients(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	ingredients := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if !ValidateName(token) {
			return nil, fmt.Errorf("invalid ingredient %q", token)
		}
		ingredients = append(ingredients, token)
	}
	return ingredients, nil
}
