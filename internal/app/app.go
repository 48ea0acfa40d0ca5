package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"chefmate/internal/chef"
	"chefmate/internal/clipper"
	"chefmate/internal/llm"
	"chefmate/internal/metrics"
	"chefmate/internal/notes"
	"chefmate/internal/plan"
	"chefmate/internal/recipe"
	"chefmate/internal/settings"
	"chefmate/internal/shopping"

	"go.uber.org/zap"
)

// ErrDuplicateRecipe is returned when an insert matches an existing library
// entry by id or title.
var ErrDuplicateRecipe = errors.New("recipe already exists in the library")

// ErrNoSuchSuggestion is returned when saving a suggestion that is not in
// the current suggestion batch.
var ErrNoSuchSuggestion = errors.New("no such suggestion")

// RecipeStore is the storage contract for library recipes. The SQLite
// repository and its in-memory fallback both satisfy it.
type RecipeStore interface {
	Save(ctx context.Context, rec recipe.Recipe) error
	List(ctx context.Context) ([]recipe.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// PlanStore is the storage contract for the singleton weekly plan.
type PlanStore interface {
	Save(ctx context.Context, p plan.WeeklyPlan) error
	Load(ctx context.Context) (plan.WeeklyPlan, error)
}

// NoteStore is the storage contract for notes.
type NoteStore interface {
	Save(ctx context.Context, n notes.Note) error
	List(ctx context.Context) ([]notes.Note, error)
	Delete(ctx context.Context, id string) error
}

// SettingsStore is the storage contract for user preferences.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// App is the application state controller. It owns the in-memory state the
// presentation layer reads, routes mutations to the persistence layer, and
// drives the AI pipelines.
//
// Mutations update memory first and persist asynchronously: the app favors
// responsiveness over strict memory/disk consistency. A failed write leaves
// the two diverged until the next successful write of the same key.
type App struct {
	logger *zap.Logger

	recipeRepo   RecipeStore
	planRepo     PlanStore
	noteRepo     NoteStore
	settingsRepo SettingsStore

	chef     *chef.Chef
	clipper  *clipper.Clipper
	metrics  *metrics.Store
	writes   *writeQueue
	degraded bool

	mu          sync.Mutex
	recipes     []recipe.Recipe
	plan        plan.WeeklyPlan
	notes       []notes.Note
	suggestions []recipe.Recipe

	// Monotonic token discarding stale suggestion completions: if a newer
	// request started while one was in flight, the slower result must not
	// overwrite the newer one.
	suggestSeq atomic.Uint64
}

// New creates an App. chefService, clipService and metricsStore may be nil:
// a nil chef means no AI credentials are configured, a nil metrics store
// means usage is not recorded (the degraded in-memory session).
func New(
	logger *zap.Logger,
	recipeRepo RecipeStore,
	planRepo PlanStore,
	noteRepo NoteStore,
	settingsRepo SettingsStore,
	chefService *chef.Chef,
	clipService *clipper.Clipper,
	metricsStore *metrics.Store,
	degraded bool,
) *App {
	return &App{
		logger:       logger,
		recipeRepo:   recipeRepo,
		planRepo:     planRepo,
		noteRepo:     noteRepo,
		settingsRepo: settingsRepo,
		chef:         chefService,
		clipper:      clipService,
		metrics:      metricsStore,
		writes:       newWriteQueue(logger),
		degraded:     degraded,
	}
}

// Degraded reports whether the session is running without durable storage.
func (a *App) Degraded() bool {
	return a.degraded
}

// Load pulls persisted state into memory. On first run it seeds the library
// with the built-in recipes and initializes an empty weekly plan, persisting
// both.
func (a *App) Load(ctx context.Context) error {
	recipes, err := a.recipeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}
	if len(recipes) == 0 {
		recipes = recipe.Seed()
		for _, r := range recipes {
			rec := r
			a.writes.Enqueue("recipe/"+rec.ID, func(ctx context.Context) error {
				return a.recipeRepo.Save(ctx, rec)
			})
		}
	}

	weekly, err := a.planRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	if weekly == nil {
		weekly = plan.New()
		fresh := weekly
		a.writes.Enqueue("plan", func(ctx context.Context) error {
			return a.planRepo.Save(ctx, fresh)
		})
	}

	noteList, err := a.noteRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	a.mu.Lock()
	a.recipes = recipes
	a.plan = weekly
	a.notes = noteList
	a.mu.Unlock()
	return nil
}

// Close flushes pending background writes.
func (a *App) Close() {
	a.writes.Wait()
}

// --- Recipes ---

// Recipes returns a snapshot of the library.
func (a *App) Recipes() []recipe.Recipe {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]recipe.Recipe, len(a.recipes))
	copy(out, a.recipes)
	return out
}

// Filter returns the library entries matching f.
func (a *App) Filter(f recipe.Filter) []recipe.Recipe {
	return f.Apply(a.Recipes())
}

// AddRecipe inserts a recipe at the front of the library. A matching id or
// title is treated as a duplicate and rejected; this is a heuristic guard
// against saving the same suggestion twice, not a uniqueness constraint.
func (a *App) AddRecipe(rec recipe.Recipe) error {
	a.mu.Lock()
	for _, r := range a.recipes {
		if r.ID == rec.ID || r.Title == rec.Title {
			a.mu.Unlock()
			return ErrDuplicateRecipe
		}
	}
	a.recipes = append([]recipe.Recipe{rec}, a.recipes...)
	a.mu.Unlock()

	a.writes.Enqueue("recipe/"+rec.ID, func(ctx context.Context) error {
		return a.recipeRepo.Save(ctx, rec)
	})
	return nil
}

// DeleteRecipe removes a recipe from the library. Plan slots referencing it
// are left alone; they become dangling references and simply stop resolving.
func (a *App) DeleteRecipe(id string) {
	a.mu.Lock()
	for i, r := range a.recipes {
		if r.ID == id {
			a.recipes = append(a.recipes[:i], a.recipes[i+1:]...)
			break
		}
	}
	a.mu.Unlock()

	a.writes.Enqueue("recipe/"+id, func(ctx context.Context) error {
		return a.recipeRepo.Delete(ctx, id)
	})
}

// --- Weekly plan ---

// Plan returns the current weekly plan.
func (a *App) Plan() plan.WeeklyPlan {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plan
}

// SetMeal assigns a recipe to a day/slot, overwriting whatever was there,
// and persists the whole plan document.
func (a *App) SetMeal(dayID string, slot plan.Slot, recipeID string) error {
	a.mu.Lock()
	updated, err := plan.SetMeal(a.plan, dayID, slot, recipeID)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.plan = updated
	a.mu.Unlock()

	a.persistPlan(updated)
	return nil
}

// ClearMeal empties a day/slot and persists the whole plan document.
func (a *App) ClearMeal(dayID string, slot plan.Slot) error {
	a.mu.Lock()
	updated, err := plan.ClearMeal(a.plan, dayID, slot)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.plan = updated
	a.mu.Unlock()

	a.persistPlan(updated)
	return nil
}

func (a *App) persistPlan(p plan.WeeklyPlan) {
	a.writes.Enqueue("plan", func(ctx context.Context) error {
		return a.planRepo.Save(ctx, p)
	})
}

// ShoppingList derives the grouped shopping list from the current plan and
// library.
func (a *App) ShoppingList() []shopping.Group {
	a.mu.Lock()
	defer a.mu.Unlock()
	return shopping.Build(a.plan, a.recipes)
}

// --- Notes ---

// Notes returns the notes, newest first.
func (a *App) Notes() []notes.Note {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]notes.Note, len(a.notes))
	copy(out, a.notes)
	return out
}

// AddNote creates a note from the given text.
func (a *App) AddNote(text string) notes.Note {
	n := notes.New(text, time.Now())

	a.mu.Lock()
	a.notes = append([]notes.Note{n}, a.notes...)
	a.mu.Unlock()

	a.writes.Enqueue("note/"+n.ID, func(ctx context.Context) error {
		return a.noteRepo.Save(ctx, n)
	})
	return n
}

// ToggleNote flips a note's completion flag.
func (a *App) ToggleNote(id string) error {
	a.mu.Lock()
	var updated *notes.Note
	for i := range a.notes {
		if a.notes[i].ID == id {
			a.notes[i].Completed = !a.notes[i].Completed
			n := a.notes[i]
			updated = &n
			break
		}
	}
	a.mu.Unlock()

	if updated == nil {
		return fmt.Errorf("no note with id %s", id)
	}
	n := *updated
	a.writes.Enqueue("note/"+n.ID, func(ctx context.Context) error {
		return a.noteRepo.Save(ctx, n)
	})
	return nil
}

// DeleteNote removes a note.
func (a *App) DeleteNote(id string) {
	a.mu.Lock()
	for i, n := range a.notes {
		if n.ID == id {
			a.notes = append(a.notes[:i], a.notes[i+1:]...)
			break
		}
	}
	a.mu.Unlock()

	a.writes.Enqueue("note/"+id, func(ctx context.Context) error {
		return a.noteRepo.Delete(ctx, id)
	})
}

// --- AI suggestions ---

// SuggestRequest carries the constraints for an ingredient-based suggestion.
type SuggestRequest struct {
	Ingredients string // comma-separated, may be empty
	Cuisine     string
	MealType    string
	Diet        bool
}

// Suggest asks the chef service for recipe suggestions. The returned recipes
// also become the current suggestion batch, unless a newer request started
// in the meantime, in which case this result is returned but not retained.
func (a *App) Suggest(ctx context.Context, req SuggestRequest) ([]recipe.Recipe, error) {
	if a.chef == nil {
		return nil, chef.ErrMissingCredentials
	}

	var ingredients []string
	for _, part := range strings.Split(req.Ingredients, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ingredients = append(ingredients, p)
		}
	}

	token := a.suggestSeq.Add(1)
	start := time.Now()
	results, usages, err := a.chef.SuggestFromIngredients(ctx, ingredients, req.Cuisine, req.MealType, req.Diet)
	if err != nil {
		return nil, err
	}
	a.recordUsage("suggest", usages, time.Since(start))

	a.storeSuggestions(token, results)
	return results, nil
}

// LookupRecipe asks the chef service for a single named dish.
func (a *App) LookupRecipe(ctx context.Context, name string) ([]recipe.Recipe, error) {
	if a.chef == nil {
		return nil, chef.ErrMissingCredentials
	}

	token := a.suggestSeq.Add(1)
	start := time.Now()
	results, usages, err := a.chef.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	a.recordUsage("lookup", usages, time.Since(start))

	a.storeSuggestions(token, results)
	return results, nil
}

func (a *App) storeSuggestions(token uint64, results []recipe.Recipe) {
	if a.suggestSeq.Load() != token {
		a.logger.Debug("discarding stale suggestion result", zap.Uint64("token", token))
		return
	}
	a.mu.Lock()
	a.suggestions = results
	a.mu.Unlock()
}

// Suggestions returns the current suggestion batch.
func (a *App) Suggestions() []recipe.Recipe {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]recipe.Recipe, len(a.suggestions))
	copy(out, a.suggestions)
	return out
}

// SaveSuggestion moves a suggestion into the library.
func (a *App) SaveSuggestion(id string) (recipe.Recipe, error) {
	a.mu.Lock()
	var found *recipe.Recipe
	for _, s := range a.suggestions {
		if s.ID == id {
			rec := s
			found = &rec
			break
		}
	}
	a.mu.Unlock()

	if found == nil {
		return recipe.Recipe{}, ErrNoSuchSuggestion
	}
	if err := a.AddRecipe(*found); err != nil {
		return recipe.Recipe{}, err
	}
	return *found, nil
}

// ClipRecipe imports a recipe from a web page. Like suggestions, the result
// is returned for explicit saving.
func (a *App) ClipRecipe(ctx context.Context, pageURL string) (*recipe.Recipe, error) {
	if a.clipper == nil {
		return nil, chef.ErrMissingCredentials
	}
	start := time.Now()
	rec, err := a.clipper.ClipURL(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	a.recordUsage("clip", nil, time.Since(start))
	return rec, nil
}

func (a *App) recordUsage(operation string, usages []llm.Usage, latency time.Duration) {
	if a.metrics == nil {
		return
	}
	if len(usages) == 0 {
		usages = []llm.Usage{{}}
	}
	for _, u := range usages {
		if err := a.metrics.Record(context.Background(), metrics.MapUsage(operation, u, latency)); err != nil {
			a.logger.Warn("failed to record ai metric", zap.Error(err))
		}
	}
}

// DailyUsage reports AI token usage per day over the last N days. A degraded
// session has no metrics store and reports nothing.
func (a *App) DailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	if a.metrics == nil {
		return nil, nil
	}
	return a.metrics.GetDailyUsage(ctx, days)
}

// PruneMetrics deletes AI-call records older than the given number of days.
func (a *App) PruneMetrics(ctx context.Context, olderThanDays int) (int64, error) {
	if a.metrics == nil {
		return 0, nil
	}
	return a.metrics.Cleanup(ctx, olderThanDays)
}

// --- Settings ---

// Username returns the saved chef name, or "".
func (a *App) Username(ctx context.Context) string {
	name, err := a.settingsRepo.Get(ctx, settings.KeyUsername)
	if err != nil {
		a.logger.Warn("failed to read username", zap.Error(err))
		return ""
	}
	return name
}

// SetUsername persists the chef name.
func (a *App) SetUsername(ctx context.Context, name string) error {
	return a.settingsRepo.Set(ctx, settings.KeyUsername, name)
}

// Theme returns the saved theme preference; dark is the default.
func (a *App) Theme(ctx context.Context) string {
	theme, err := a.settingsRepo.Get(ctx, settings.KeyTheme)
	if err != nil || theme == "" {
		return settings.ThemeDark
	}
	return theme
}

// SetTheme persists the theme preference.
func (a *App) SetTheme(ctx context.Context, theme string) error {
	if theme != settings.ThemeDark && theme != settings.ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return a.settingsRepo.Set(ctx, settings.KeyTheme, theme)
}
