package chef

import (
	"encoding/json"
	"strings"

	"chefmate/internal/recipe"
)

// rawSuggestion mirrors the JSON object shape demanded from the text model.
// Only title, description, ingredients, steps, prepTime, calories and tags
// are required; the rest are optional.
type rawSuggestion struct {
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	Ingredients         []recipe.Ingredient `json:"ingredients"`
	Steps               []string            `json:"steps"`
	PrepTime            float64             `json:"prepTime"`
	Calories            float64             `json:"calories"`
	Tags                []string            `json:"tags"`
	Cuisine             string              `json:"cuisine"`
	CookingMethod       string              `json:"cookingMethod"`
	DietaryRestrictions []string            `json:"dietaryRestrictions"`
}

const (
	defaultTitle       = "Chef's Surprise"
	defaultDescription = "A delicious dish."
	defaultPrepTime    = 20
	defaultCalories    = 300
)

// parseBatch validates the model output against the required schema. Any
// parse failure discards the entire batch: a response that is not a JSON
// recipe array is never partially salvaged. Optional fields get their
// defaults here, at the validation boundary, so nothing downstream has to
// guess.
func parseBatch(content string) ([]recipe.Recipe, error) {
	cleaned := stripCodeFence(content)

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &MalformedResponseError{Raw: content, Err: err}
	}

	recipes := make([]recipe.Recipe, 0, len(raw))
	for _, r := range raw {
		recipes = append(recipes, normalize(r))
	}
	return recipes, nil
}

func normalize(r rawSuggestion) recipe.Recipe {
	out := recipe.Recipe{
		ID:          newSuggestionID(),
		Title:       r.Title,
		Description: r.Description,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		PrepTime:    int(r.PrepTime),
		Calories:    int(r.Calories),
		Cuisine:     recipe.Cuisine(r.Cuisine),
	}

	if out.Title == "" {
		out.Title = defaultTitle
	}
	if out.Description == "" {
		out.Description = defaultDescription
	}
	if out.Ingredients == nil {
		out.Ingredients = []recipe.Ingredient{}
	}
	if out.Steps == nil {
		out.Steps = []string{}
	}
	if out.PrepTime <= 0 {
		out.PrepTime = defaultPrepTime
	}
	if out.Calories <= 0 {
		out.Calories = defaultCalories
	}

	out.Tags = make([]recipe.Tag, 0, len(r.Tags))
	for _, t := range r.Tags {
		out.Tags = append(out.Tags, recipe.Tag(t))
	}
	if r.CookingMethod != "" {
		out.CookingMethod = recipe.CookingMethod(r.CookingMethod)
	}
	for _, d := range r.DietaryRestrictions {
		out.DietaryRestrictions = append(out.DietaryRestrictions, recipe.DietaryRestriction(d))
	}
	return out
}

// stripCodeFence tolerates models that ignore the "no markdown" instruction
// and wrap the JSON in a ```json fence.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
