package recipe

import (
	"fmt"
	"strings"
)

// Ingredient is a single ingredient line: a name plus a free-text amount.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Tag classifies a recipe for quick filtering.
type Tag string

const (
	TagVegetarian Tag = "vegetarian"
	TagDiet       Tag = "diet"
	TagQuick      Tag = "quick"
	TagEconomical Tag = "economical"
	TagDessert    Tag = "dessert"
	TagMain       Tag = "main"
)

// Cuisine is an optional kitchen-of-origin classification.
type Cuisine string

const (
	CuisineEgyptian      Cuisine = "egyptian"
	CuisineLevantine     Cuisine = "levantine"
	CuisineTurkish       Cuisine = "turkish"
	CuisineItalian       Cuisine = "italian"
	CuisineAsian         Cuisine = "asian"
	CuisineIndian        Cuisine = "indian"
	CuisineAmerican      Cuisine = "american"
	CuisineInternational Cuisine = "international"
)

// CookingMethod is an optional preparation-style classification.
type CookingMethod string

const (
	MethodGrilled    CookingMethod = "grilled"
	MethodFried      CookingMethod = "fried"
	MethodBaked      CookingMethod = "baked"
	MethodBoiled     CookingMethod = "boiled"
	MethodStovetop   CookingMethod = "stovetop"
	MethodSlowCooked CookingMethod = "slow-cooked"
)

// DietaryRestriction is an optional dietary classification.
type DietaryRestriction string

const (
	DietGlutenFree DietaryRestriction = "gluten-free"
	DietDairyFree  DietaryRestriction = "dairy-free"
	DietVegan      DietaryRestriction = "vegan"
	DietKeto       DietaryRestriction = "keto"
)

// Recipe is a library entry. Recipes are inserted and deleted, never edited
// in place.
type Recipe struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Ingredients         []Ingredient         `json:"ingredients"`
	Steps               []string             `json:"steps"`
	PrepTime            int                  `json:"prepTime"` // minutes
	Calories            int                  `json:"calories"`
	Image               string               `json:"image,omitempty"` // URL or data URI
	Tags                []Tag                `json:"tags"`
	Cuisine             Cuisine              `json:"cuisine,omitempty"`
	CookingMethod       CookingMethod        `json:"cookingMethod,omitempty"`
	DietaryRestrictions []DietaryRestriction `json:"dietaryRestrictions,omitempty"`
}

// HasTag reports whether the recipe carries the given tag.
func (r Recipe) HasTag(tag Tag) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasRestriction reports whether the recipe carries the given dietary restriction.
func (r Recipe) HasRestriction(d DietaryRestriction) bool {
	for _, x := range r.DietaryRestrictions {
		if x == d {
			return true
		}
	}
	return false
}

// Filter selects a subset of the library for display.
// Zero values mean "no constraint"; DietaryRestrictions is a conjunction.
type Filter struct {
	Query               string
	Tag                 Tag
	Cuisine             Cuisine
	CookingMethod       CookingMethod
	DietaryRestrictions []DietaryRestriction
}

// Apply returns the recipes matching the filter, preserving input order.
// The query matches case-insensitively against titles and ingredient names.
func (f Filter) Apply(recipes []Recipe) []Recipe {
	query := strings.ToLower(f.Query)
	var out []Recipe
	for _, r := range recipes {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if f.Tag != "" && !r.HasTag(f.Tag) {
			continue
		}
		if f.Cuisine != "" && r.Cuisine != f.Cuisine {
			continue
		}
		if f.CookingMethod != "" && r.CookingMethod != f.CookingMethod {
			continue
		}
		if !matchesAllRestrictions(r, f.DietaryRestrictions) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesQuery(r Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), query) {
			return true
		}
	}
	return false
}

func matchesAllRestrictions(r Recipe, wanted []DietaryRestriction) bool {
	for _, d := range wanted {
		if !r.HasRestriction(d) {
			return false
		}
	}
	return true
}

// ShareText renders a recipe as plain text suitable for pasting into a chat
// message or a printout.
func ShareText(r Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n\n", r.Title, r.Description)

	sb.WriteString("Ingredients:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&sb, "- %s: %s\n", ing.Name, ing.Amount)
	}

	sb.WriteString("\nSteps:\n")
	for i, step := range r.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}

	fmt.Fprintf(&sb, "\nCalories: %d | Prep time: %d min\n", r.Calories, r.PrepTime)
	sb.WriteString("\nSent from Chef Mate")
	return sb.String()
}
