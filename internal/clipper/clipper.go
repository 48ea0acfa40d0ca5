package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chefmate/internal/chef"
	"chefmate/internal/llm"
	"chefmate/internal/recipe"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Clipper imports recipes from arbitrary web pages: it fetches the page,
// strips it down to text, and has the text model structure it into a library
// recipe. The result is returned for explicit saving, never auto-persisted.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// New creates a new Clipper instance.
func New(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a structured recipe from it.
func (c *Clipper) ClipURL(ctx context.Context, pageURL string) (*recipe.Recipe, error) {
	content, err := c.fetchAndCleanHTML(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe title",
  "description": "One-sentence description",
  "ingredients": [{"name": "ingredient", "amount": "quantity as text"}],
  "steps": ["Step 1 description", "Step 2 description"],
  "prepTime": 30,
  "calories": 400,
  "tags": ["main"],
  "cuisine": "italian"
}
prepTime is minutes and calories are per serving, both numbers; estimate them if the page does not say.
Return ONLY the raw JSON object. Do not wrap the response in markdown code blocks.

Page content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Ingredients []recipe.Ingredient `json:"ingredients"`
		Steps       []string            `json:"steps"`
		PrepTime    float64             `json:"prepTime"`
		Calories    float64             `json:"calories"`
		Tags        []string            `json:"tags"`
		Cuisine     string              `json:"cuisine"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if extracted.Title == "" {
		return nil, fmt.Errorf("no recipe found at %s", pageURL)
	}

	rec := &recipe.Recipe{
		ID:          "clip-" + uuid.NewString(),
		Title:       extracted.Title,
		Description: extracted.Description,
		Ingredients: extracted.Ingredients,
		Steps:       extracted.Steps,
		PrepTime:    int(extracted.PrepTime),
		Calories:    int(extracted.Calories),
		Image:       chef.PlaceholderImage(extracted.Title),
		Cuisine:     recipe.Cuisine(extracted.Cuisine),
	}
	for _, t := range extracted.Tags {
		rec.Tags = append(rec.Tags, recipe.Tag(t))
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []recipe.Ingredient{}
	}
	if rec.Steps == nil {
		rec.Steps = []string{}
	}
	return rec, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return strings.TrimSpace(doc.Find("body").Text()), nil
}
