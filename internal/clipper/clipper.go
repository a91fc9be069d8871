// Package clipper imports recipes from web pages as planner meals.
package clipper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"meal-planner/internal/meal"
	"meal-planner/internal/planner"
)

// ExtractedRecipe is the recipe data recovered from a page, normalized
// to the planner's letters-and-whitespace alphabet.
type ExtractedRecipe struct {
	Title       string
	Ingredients []string
}

// Clipper fetches recipe pages and stores them as meals.
type Clipper struct {
	service *planner.Service
	client  *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(service *planner.Service) *Clipper {
	return &Clipper{
		service: service,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL, extracts the recipe and saves it as a meal
// in the given category.
func (c *Clipper) ClipURL(ctx context.Context, url string, category meal.Category) (*ExtractedRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	extracted, err := Extract(resp.Body)
	if err != nil {
		return nil, err
	}

	if err := c.service.AddMeal(ctx, category, extracted.Title, extracted.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to save clipped recipe: %w", err)
	}
	return extracted, nil
}

// Extract parses recipe HTML and pulls out the title and ingredient
// lines. It prefers schema.org microdata and falls back to common
// markup conventions.
func Extract(r io.Reader) (*ExtractedRecipe, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	title := normalizeName(firstText(doc, "[itemprop=name]", "h1"))
	if title == "" {
		return nil, fmt.Errorf("no recipe title found on page")
	}

	var ingredients []string
	doc.Find("[itemprop=recipeIngredient], .ingredient").Each(func(_ int, s *goquery.Selection) {
		if name := normalizeName(s.Text()); name != "" {
			ingredients = append(ingredients, name)
		}
	})
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients found on page")
	}

	return &ExtractedRecipe{Title: title, Ingredients: ingredients}, nil
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if s := doc.Find(selector).First(); s.Length() > 0 {
			return s.Text()
		}
	}
	return ""
}

var letterRuns = regexp.MustCompile(`[a-zA-Z]+`)

// normalizeName reduces scraped text to the planner's alphabet:
// quantity digits and punctuation are dropped, letter runs are joined
// with single spaces. "2 cups of flour" becomes "cups of flour".
func normalizeName(s string) string {
	return strings.Join(letterRuns.FindAllString(s, -1), " ")
}
