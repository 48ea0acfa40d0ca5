package chef

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"chefmate/internal/llm"
	"chefmate/internal/recipe"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// How long a single image generation may take before the placeholder wins.
const imageTimeout = 8 * time.Second

// Chef turns free-form cooking requests into structured recipe suggestions
// via an external text model, with one generated image per recipe.
//
// Suggestions are not part of the library: they carry freshly generated IDs
// and are only persisted when the user explicitly saves one.
type Chef struct {
	textGen  llm.TextGenerator
	imageGen llm.ImageGenerator // may be nil; placeholders are used instead
	logger   *zap.Logger
}

// New creates a Chef. textGen must be non-nil; imageGen may be nil, in which
// case every suggestion gets the deterministic placeholder image.
func New(textGen llm.TextGenerator, imageGen llm.ImageGenerator, logger *zap.Logger) (*Chef, error) {
	if textGen == nil {
		return nil, ErrMissingCredentials
	}
	return &Chef{textGen: textGen, imageGen: imageGen, logger: logger}, nil
}

// SuggestFromIngredients asks for recipe suggestions constrained by the
// available ingredients, cuisine, meal type and diet flag. An empty
// ingredient list means "suggest anything popular".
func (c *Chef) SuggestFromIngredients(ctx context.Context, ingredients []string, cuisine, mealType string, diet bool) ([]recipe.Recipe, []llm.Usage, error) {
	var sb strings.Builder
	sb.WriteString("You are a professional chef and smart kitchen assistant. ")
	if len(ingredients) > 0 {
		fmt.Fprintf(&sb, "The ingredients I have available are: %s. ", strings.Join(ingredients, ", "))
	} else {
		sb.WriteString("Suggest some of the best-loved popular dishes. ")
	}

	if cuisine == "" {
		cuisine = "any"
	}
	if mealType == "" {
		mealType = "main"
	}
	fmt.Fprintf(&sb, "Cuisine: %s. Meal type: %s. ", cuisine, mealType)
	if diet {
		sb.WriteString("The recipes must be healthy and diet-friendly. ")
	}
	sb.WriteString("Suggest 5 distinctive recipes.\n")
	sb.WriteString(schemaInstructions)

	return c.generate(ctx, sb.String())
}

// ByName asks for the full details of a single named dish. The result is a
// batch of exactly one recipe.
func (c *Chef) ByName(ctx context.Context, name string) ([]recipe.Recipe, []llm.Usage, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a professional chef. Give me the complete recipe for %q in full detail, with all ingredients and steps.\n", name)
	sb.WriteString("Return a JSON array containing exactly one recipe object.\n")
	sb.WriteString(schemaInstructions)

	return c.generate(ctx, sb.String())
}

const schemaInstructions = `
Return the result strictly as a JSON array of objects with this structure:
[
  {
    "title": "Recipe name",
    "description": "An appetizing one-sentence description",
    "ingredients": [{"name": "ingredient", "amount": "quantity as text"}],
    "steps": ["Step 1", "Step 2"],
    "prepTime": 30,
    "calories": 400,
    "tags": ["quick", "main"],
    "cuisine": "italian",
    "cookingMethod": "baked",
    "dietaryRestrictions": ["gluten-free"]
  }
]
prepTime is minutes and calories are per serving, both numbers.
cuisine, cookingMethod and dietaryRestrictions are optional.
Return ONLY the raw JSON array. Do not wrap the response in markdown code blocks.`

func (c *Chef) generate(ctx context.Context, prompt string) ([]recipe.Recipe, []llm.Usage, error) {
	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	batch, err := parseBatch(resp.Content)
	if err != nil {
		return nil, nil, err
	}

	recipes := c.attachImages(ctx, batch)
	return recipes, []llm.Usage{resp.Usage}, nil
}

// attachImages requests one image per recipe. The requests are independent
// and idempotent, so they run concurrently; any failure or timeout falls back
// to the deterministic placeholder and never fails the suggestion.
func (c *Chef) attachImages(ctx context.Context, recipes []recipe.Recipe) []recipe.Recipe {
	var wg sync.WaitGroup
	for i := range recipes {
		wg.Add(1)
		go func(r *recipe.Recipe) {
			defer wg.Done()
			r.Image = c.generateImage(ctx, r.Title, r.Description)
		}(&recipes[i])
	}
	wg.Wait()
	return recipes
}

func (c *Chef) generateImage(ctx context.Context, title, description string) string {
	if c.imageGen == nil {
		return PlaceholderImage(title)
	}

	imgCtx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Professional food photography of the dish %q. Description: %s. High resolution, delicious, appetizing, restaurant plating, cinematic lighting.",
		title, description,
	)
	img, err := c.imageGen.GenerateImage(imgCtx, prompt)
	if err != nil {
		c.logger.Debug("image generation failed, using placeholder",
			zap.String("title", title), zap.Error(err))
		return PlaceholderImage(title)
	}
	return img
}

// PlaceholderImage returns the deterministic fallback image URL for a recipe
// title. The same title always yields the same URL.
func PlaceholderImage(title string) string {
	return "https://placehold.co/800x600/1e293b/white?text=" + url.QueryEscape(title)
}

// newSuggestionID returns a fresh identifier that cannot collide with
// anything already in the library.
func newSuggestionID() string {
	return "suggestion-" + uuid.NewString()
}
