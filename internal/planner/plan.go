package planner

import "meal-planner/internal/meal"

// Weekdays is the fixed planning order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Entry is one stored weekday assignment of three meal names.
type Entry struct {
	Day       string
	Breakfast string
	Lunch     string
	Dinner    string
}

// DayChoice is the user's selection for a single day, by meal name.
type DayChoice struct {
	Day       string
	Breakfast string
	Lunch     string
	Dinner    string
}

// Options holds the selectable meal names per category, each sorted
// lexicographically. They are fetched once per planning run.
type Options struct {
	Breakfast []string
	Lunch     []string
	Dinner    []string
}

// ForCategory returns the option list for a category.
func (o Options) ForCategory(c meal.Category) []string {
	switch c {
	case meal.Breakfast:
		return o.Breakfast
	case meal.Lunch:
		return o.Lunch
	default:
		return o.Dinner
	}
}
