package app

import (
	"context"
	"errors"
	"testing"

	"chefmate/internal/chef"
	"chefmate/internal/llm"
	"chefmate/internal/notes"
	"chefmate/internal/plan"
	"chefmate/internal/recipe"
	"chefmate/internal/settings"

	"go.uber.org/zap"
)

type stubTextGenerator struct {
	response string
	err      error
}

func (s *stubTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	if s.err != nil {
		return llm.ContentResponse{}, s.err
	}
	return llm.ContentResponse{Content: s.response, Usage: llm.Usage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30}}, nil
}

type fixture struct {
	app      *App
	recipes  *recipe.MemoryRepository
	plans    *plan.MemoryRepository
	notes    *notes.MemoryRepository
	settings *settings.MemoryRepository
}

func newFixture(t *testing.T, chefService *chef.Chef) *fixture {
	t.Helper()
	f := &fixture{
		recipes:  recipe.NewMemoryRepository(),
		plans:    plan.NewMemoryRepository(),
		notes:    notes.NewMemoryRepository(),
		settings: settings.NewMemoryRepository(),
	}
	f.app = New(zap.NewNop(), f.recipes, f.plans, f.notes, f.settings, chefService, nil, nil, false)
	return f
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedsEmptyLibrary", func(t *testing.T) {
		f := newFixture(t, nil)
		if err := f.app.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		f.app.Close()

		if len(f.app.Recipes()) == 0 {
			t.Errorf("Expected seed recipes in an empty library")
		}
		if len(f.app.Plan()) != 7 {
			t.Errorf("Expected a full empty plan, got %d days", len(f.app.Plan()))
		}

		// Seeds and the fresh plan are persisted, not just in memory.
		if count, _ := f.recipes.Count(ctx); count == 0 {
			t.Errorf("Expected seed recipes to be persisted")
		}
		if p, _ := f.plans.Load(ctx); p == nil {
			t.Errorf("Expected the fresh plan to be persisted")
		}
	})

	t.Run("ExistingLibraryNotReseeded", func(t *testing.T) {
		f := newFixture(t, nil)
		existing := recipe.Recipe{ID: "mine", Title: "My Stew"}
		if err := f.recipes.Save(ctx, existing); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if err := f.app.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		f.app.Close()

		got := f.app.Recipes()
		if len(got) != 1 || got[0].ID != "mine" {
			t.Errorf("Expected only the existing recipe, got %d entries", len(got))
		}
	})
}

func TestAddRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	if err := f.app.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	t.Run("PrependsToLibrary", func(t *testing.T) {
		rec := recipe.Recipe{ID: "new", Title: "Brand New Dish"}
		if err := f.app.AddRecipe(rec); err != nil {
			t.Fatalf("AddRecipe failed: %v", err)
		}
		if got := f.app.Recipes(); got[0].ID != "new" {
			t.Errorf("Expected the new recipe at the front, got %q", got[0].ID)
		}
	})

	t.Run("DuplicateID", func(t *testing.T) {
		err := f.app.AddRecipe(recipe.Recipe{ID: "new", Title: "Different Title"})
		if !errors.Is(err, ErrDuplicateRecipe) {
			t.Errorf("Expected ErrDuplicateRecipe for a matching id, got %v", err)
		}
	})

	t.Run("DuplicateTitle", func(t *testing.T) {
		err := f.app.AddRecipe(recipe.Recipe{ID: "other", Title: "Brand New Dish"})
		if !errors.Is(err, ErrDuplicateRecipe) {
			t.Errorf("Expected ErrDuplicateRecipe for a matching title, got %v", err)
		}
	})

	t.Run("Persisted", func(t *testing.T) {
		f.app.Close()
		got, err := f.recipes.Get(ctx, "new")
		if err != nil || got == nil {
			t.Errorf("Expected the added recipe to be persisted, got %v/%v", got, err)
		}
	})
}

func TestDeleteRecipeLeavesDanglingPlanRef(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	if err := f.app.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rec := recipe.Recipe{ID: "doomed", Title: "Doomed Dish"}
	if err := f.app.AddRecipe(rec); err != nil {
		t.Fatalf("AddRecipe failed: %v", err)
	}
	if err := f.app.SetMeal("mon", plan.Lunch, "doomed"); err != nil {
		t.Fatalf("SetMeal failed: %v", err)
	}

	f.app.DeleteRecipe("doomed")

	// The slot still holds the reference; the shopping list just skips it.
	if got := f.app.Plan()["mon"].Meals.Lunch; got != "doomed" {
		t.Errorf("Expected the plan slot to keep the dangling reference, got %q", got)
	}
	for _, g := range f.app.ShoppingList() {
		if g.Recipe.ID == "doomed" {
			t.Errorf("Expected the deleted recipe to disappear from the shopping list")
		}
	}
	f.app.Close()
}

func TestSetMealPersists(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	if err := f.app.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := f.app.SetMeal("wed", plan.Dinner, "recipe-1"); err != nil {
		t.Fatalf("SetMeal failed: %v", err)
	}
	if err := f.app.SetMeal("wed", plan.Dinner, "recipe-2"); err != nil {
		t.Fatalf("SetMeal failed: %v", err)
	}
	f.app.Close()

	stored, err := f.plans.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if stored["wed"].Meals.Dinner != "recipe-2" {
		t.Errorf("Expected the last write to win, got %q", stored["wed"].Meals.Dinner)
	}
}

func TestSetMealUnknownDay(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.app.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer f.app.Close()

	if err := f.app.SetMeal("noday", plan.Lunch, "r"); err == nil {
		t.Errorf("Expected an error for an unknown day")
	}
}

func TestNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	if err := f.app.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	n := f.app.AddNote("buy parsley")
	if n.Text != "buy parsley" || n.ID == "" {
		t.Fatalf("Unexpected note: %+v", n)
	}

	if err := f.app.ToggleNote(n.ID); err != nil {
		t.Fatalf("ToggleNote failed: %v", err)
	}
	if got := f.app.Notes(); !got[0].Completed {
		t.Errorf("Expected the note to be completed after toggle")
	}

	if err := f.app.ToggleNote("missing"); err == nil {
		t.Errorf("Expected an error toggling a missing note")
	}

	f.app.DeleteNote(n.ID)
	if got := f.app.Notes(); len(got) != 0 {
		t.Errorf("Expected no notes after delete, got %d", len(got))
	}
	f.app.Close()

	if stored, _ := f.notes.List(ctx); len(stored) != 0 {
		t.Errorf("Expected the delete to be persisted, got %d notes", len(stored))
	}
}

const suggestionBatch = `[{"title": "Test Dish", "description": "Tasty.",
	"ingredients": [{"name": "salt", "amount": "a pinch"}],
	"steps": ["Season."], "prepTime": 5, "calories": 100, "tags": ["quick"]}]`

func newChef(t *testing.T, gen llm.TextGenerator) *chef.Chef {
	t.Helper()
	c, err := chef.New(gen, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to build chef: %v", err)
	}
	return c
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()

	t.Run("NoCredentials", func(t *testing.T) {
		f := newFixture(t, nil)
		if _, err := f.app.Suggest(ctx, SuggestRequest{}); !errors.Is(err, chef.ErrMissingCredentials) {
			t.Errorf("Expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("StoresBatch", func(t *testing.T) {
		f := newFixture(t, newChef(t, &stubTextGenerator{response: suggestionBatch}))
		results, err := f.app.Suggest(ctx, SuggestRequest{Ingredients: "salt, pepper"})
		if err != nil {
			t.Fatalf("Suggest failed: %v", err)
		}
		if len(results) != 1 || results[0].Title != "Test Dish" {
			t.Fatalf("Unexpected results: %+v", results)
		}
		if got := f.app.Suggestions(); len(got) != 1 {
			t.Errorf("Expected the batch to be retained, got %d", len(got))
		}
	})

	t.Run("StaleResultDiscarded", func(t *testing.T) {
		f := newFixture(t, nil)
		stale := f.app.suggestSeq.Add(1)
		f.app.suggestSeq.Add(1) // a newer request started meanwhile

		f.app.storeSuggestions(stale, []recipe.Recipe{{ID: "late", Title: "Late Arrival"}})
		if got := f.app.Suggestions(); len(got) != 0 {
			t.Errorf("Expected the stale batch to be discarded, got %d", len(got))
		}
	})
}

func TestSaveSuggestion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newChef(t, &stubTextGenerator{response: suggestionBatch}))
	if err := f.app.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	results, err := f.app.Suggest(ctx, SuggestRequest{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	t.Run("MovesToLibrary", func(t *testing.T) {
		saved, err := f.app.SaveSuggestion(results[0].ID)
		if err != nil {
			t.Fatalf("SaveSuggestion failed: %v", err)
		}
		if got := f.app.Recipes(); got[0].ID != saved.ID {
			t.Errorf("Expected the saved suggestion at the front of the library")
		}
	})

	t.Run("SavingTwiceIsDuplicate", func(t *testing.T) {
		if _, err := f.app.SaveSuggestion(results[0].ID); !errors.Is(err, ErrDuplicateRecipe) {
			t.Errorf("Expected ErrDuplicateRecipe, got %v", err)
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := f.app.SaveSuggestion("nope"); !errors.Is(err, ErrNoSuchSuggestion) {
			t.Errorf("Expected ErrNoSuchSuggestion, got %v", err)
		}
	})
	f.app.Close()
}

func TestLookupRecipe(t *testing.T) {
	f := newFixture(t, newChef(t, &stubTextGenerator{response: suggestionBatch}))

	results, err := f.app.LookupRecipe(context.Background(), "test dish")
	if err != nil {
		t.Fatalf("LookupRecipe failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected exactly 1 recipe, got %d", len(results))
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	t.Run("ThemeDefaultsToDark", func(t *testing.T) {
		if got := f.app.Theme(ctx); got != settings.ThemeDark {
			t.Errorf("Expected dark default theme, got %q", got)
		}
	})

	t.Run("ThemeRoundTrip", func(t *testing.T) {
		if err := f.app.SetTheme(ctx, settings.ThemeLight); err != nil {
			t.Fatalf("SetTheme failed: %v", err)
		}
		if got := f.app.Theme(ctx); got != settings.ThemeLight {
			t.Errorf("Expected light theme, got %q", got)
		}
	})

	t.Run("UnknownThemeRejected", func(t *testing.T) {
		if err := f.app.SetTheme(ctx, "sepia"); err == nil {
			t.Errorf("Expected an error for an unknown theme")
		}
	})

	t.Run("Username", func(t *testing.T) {
		if got := f.app.Username(ctx); got != "" {
			t.Errorf("Expected empty username, got %q", got)
		}
		if err := f.app.SetUsername(ctx, "Sam"); err != nil {
			t.Fatalf("SetUsername failed: %v", err)
		}
		if got := f.app.Username(ctx); got != "Sam" {
			t.Errorf("Expected Sam, got %q", got)
		}
	})
}
