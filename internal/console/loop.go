// Package console implements the line-oriented prompt/response loop for
// the meal planner.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"meal-planner/internal/meal"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
)

const (
	menuPrompt          = "What would you like to do (add, show, plan, save, exit)?"
	wrongCategoryPrompt = "Wrong meal category! Choose from: breakfast, lunch, dinner"
	wrongFormatPrompt   = "Wrong format. Use letters only!"
	wrongChoicePrompt   = "This meal doesn't exist. Choose a meal from the list above!"
)

// Loop runs the interactive command loop over an injected reader/writer
// pair.
type Loop struct {
	service    *planner.Service
	usage      *metrics.Store
	logger     *zap.Logger
	in         *bufio.Scanner
	out        io.Writer
	legacyList bool
}

// NewLoop creates a Loop. The metrics store may be nil, in which case
// command usage is not recorded.
func NewLoop(service *planner.Service, usage *metrics.Store, logger *zap.Logger, in io.Reader, out io.Writer, legacyList bool) *Loop {
	return &Loop{
		service:    service,
		usage:      usage,
		logger:     logger,
		in:         bufio.NewScanner(in),
		out:        out,
		legacyList: legacyList,
	}
}

// Run processes commands until "exit" or end of input. Unknown commands
// are silently ignored and the menu reprompts.
func (l *Loop) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(l.out, menuPrompt)
		line, ok := l.readLine()
		if !ok {
			return nil
		}

		command := strings.TrimSpace(line)
		start := time.Now()
		var err error
		switch command {
		case "add":
			err = l.runAdd(ctx)
		case "show":
			err = l.runShow(ctx)
		case "plan":
			err = l.runPlan(ctx)
		case "save":
			err = l.runSave(ctx)
		case "exit":
			fmt.Fprintln(l.out, "Bye!")
			return nil
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("command %s failed: %w", command, err)
		}
		l.recordUsage(ctx, command, time.Since(start))
	}
}

func (l *Loop) recordUsage(ctx context.Context, command string, d time.Duration) {
	if l.usage == nil {
		return
	}
	m := metrics.CommandMetric{Command: command, Duration: d}
	if err := l.usage.Record(ctx, m); err != nil {
		l.logger.Warn("failed to record command usage", zap.String("command", command), zap.Error(err))
	}
}

func (l *Loop) readLine() (string, bool) {
	if !l.in.Scan() {
		return "", false
	}
	return l.in.Text(), true
}

// promptCategory asks until the user types a valid category.
func (l *Loop) promptCategory(prompt string) (meal.Category, bool) {
	fmt.Fprintln(l.out, prompt)
	for {
		line, ok := l.readLine()
		if !ok {
			return "", false
		}
		category, err := meal.ParseCategory(strings.TrimSpace(line))
		if err == nil {
			return category, true
		}
		fmt.Fprintln(l.out, wrongCategoryPrompt)
	}
}

func (l *Loop) runAdd(ctx context.Context) error {
	category, ok := l.promptCategory("Which meal do you want to add (breakfast, lunch, dinner)?")
	if !ok {
		return nil
	}

	fmt.Fprintln(l.out, "Input the meal's name:")
	var name string
	for {
		line, ok := l.readLine()
		if !ok {
			return nil
		}
		name = strings.TrimSpace(line)
		if meal.ValidateName(name) {
			break
		}
		fmt.Fprintln(l.out, wrongFormatPrompt)
	}

	fmt.Fprintln(l.out, "Input the ingredients:")
	var ingredients []string
	for {
		line, ok := l.readLine()
		if !ok {
			return nil
		}
		parsed, err := meal.ParseIngredients(line)
		if err == nil {
			ingredients = parsed
			break
		}
		fmt.Fprintln(l.out, wrongFormatPrompt)
	}

	if err := l.service.AddMeal(ctx, category, name, ingredients); err != nil {
		return err
	}
	fmt.Fprintln(l.out, "The meal has been added!")
	return nil
}

func (l *Loop) runShow(ctx context.Context) error {
	category, ok := l.promptCategory("Which category do you want to print (breakfast, lunch, dinner)?")
	if !ok {
		return nil
	}

	details, err := l.service.MealsWithIngredients(ctx, category)
	if err != nil {
		return err
	}
	if len(details) == 0 {
		fmt.Fprintln(l.out, "No meals found.")
		return nil
	}

	fmt.Fprintf(l.out, "Category: %s\n", category)
	for _, detail := range details {
		fmt.Fprintln(l.out)
		fmt.Fprintf(l.out, "Name: %s\n", detail.Name)
		fmt.Fprintln(l.out, "Ingredients:")
		for _, ingredient := range detail.Ingredients {
			fmt.Fprintln(l.out, ingredient)
		}
	}
	fmt.Fprintln(l.out)
	return nil
}

func (l *Loop) runPlan(ctx context.Context) error {
	opts, err := l.service.Options(ctx)
	if err != nil {
		return err
	}

	week := make([]planner.DayChoice, 0, len(planner.Weekdays))
	for _, day := range planner.Weekdays {
		fmt.Fprintln(l.out, day)

		choice := planner.DayChoice{Day: day}
		for _, category := range meal.Categories {
			names := opts.ForCategory(category)
			for _, name := range names {
				fmt.Fprintln(l.out, name)
			}
			fmt.Fprintf(l.out, "Choose the %s for %s from the list above:\n", category, day)

			chosen, ok := l.promptFromList(names)
			if !ok {
				return nil
			}
			switch category {
			case meal.Breakfast:
				choice.Breakfast = chosen
			case meal.Lunch:
				choice.Lunch = chosen
			case meal.Dinner:
				choice.Dinner = chosen
			}
		}
		fmt.Fprintf(l.out, "Yeah! We planned the meals for %s.\n", day)
		fmt.Fprintln(l.out)
		week = append(week, choice)
	}

	for _, choice := range week {
		fmt.Fprintln(l.out, choice.Day)
		fmt.Fprintf(l.out, "Breakfast: %s\n", choice.Breakfast)
		fmt.Fprintf(l.out, "Lunch: %s\n", choice.Lunch)
		fmt.Fprintf(l.out, "Dinner: %s\n", choice.Dinner)
		fmt.Fprintln(l.out)
	}

	return l.service.SaveWeek(ctx, week)
}

// promptFromList re-asks until the typed value matches a listed name
// exactly.
func (l *Loop) promptFromList(names []string) (string, bool) {
	for {
		line, ok := l.readLine()
		if !ok {
			return "", false
		}
		typed := strings.TrimSpace(line)
		for _, name := range names {
			if typed == name {
				return name, true
			}
		}
		fmt.Fprintln(l.out, wrongChoicePrompt)
	}
}

func (l *Loop) runSave(ctx context.Context) error {
	list, err := l.service.ShoppingList(ctx)
	if errors.Is(err, planner.ErrEmptyPlan) {
		fmt.Fprintln(l.out, "Unable to save. Plan your meals first.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(l.out, "Input a filename:")
	filename, ok := l.readLine()
	if !ok {
		return nil
	}

	if err := list.WriteFile(strings.TrimSpace(filename), l.legacyList); err != nil {
		return err
	}
	fmt.Fprintln(l.out, "Saved!")
	return nil
}
