package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"chefmate/internal/app"
	"chefmate/internal/chef"
	"chefmate/internal/clipper"
	"chefmate/internal/config"
	"chefmate/internal/database"
	"chefmate/internal/llm"
	"chefmate/internal/metrics"
	"chefmate/internal/notes"
	"chefmate/internal/plan"
	"chefmate/internal/recipe"
	"chefmate/internal/settings"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	cfg := config.NewFromEnv()

	application, cleanup := buildApp(ctx, cfg, logger)
	defer cleanup()

	if err := application.Load(ctx); err != nil {
		logger.Fatal("failed to load application state", zap.Error(err))
	}
	defer application.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := run(ctx, application, cfg, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, chef.ErrMissingCredentials) {
			fmt.Println("No AI credentials configured. Set GEMINI_API_KEY or OPENROUTER_API_KEY to use the smart chef.")
			os.Exit(1)
		}
		logger.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

// buildApp wires storage, AI clients and the controller together. When local
// storage cannot be opened the session degrades to in-memory defaults
// instead of failing.
func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app.App, func()) {
	var (
		cleanup      = func() {}
		degraded     bool
		metricsStore *metrics.Store

		rRepo app.RecipeStore
		pRepo app.PlanStore
		nRepo app.NoteStore
		sRepo app.SettingsStore
	)

	db, err := database.New(cfg.DatabasePath, logger)
	if err != nil {
		logger.Warn("local storage unavailable, running with in-memory defaults", zap.Error(err))
		degraded = true
		rRepo = recipe.NewMemoryRepository()
		pRepo = plan.NewMemoryRepository()
		nRepo = notes.NewMemoryRepository()
		sRepo = settings.NewMemoryRepository()
	} else {
		cleanup = func() { db.Close() }
		rRepo = recipe.NewRepository(db.SQL, logger)
		pRepo = plan.NewRepository(db.SQL)
		nRepo = notes.NewRepository(db.SQL)
		sRepo = settings.NewRepository(db.SQL)
		metricsStore = metrics.NewStore(db.SQL)
	}

	textGen, imageGen := buildAI(ctx, cfg, logger)
	if closer, ok := textGen.(llm.Closer); ok {
		prev := cleanup
		cleanup = func() {
			closer.Close()
			prev()
		}
	}

	var chefService *chef.Chef
	var clipService *clipper.Clipper
	if textGen != nil {
		chefService, err = chef.New(textGen, imageGen, logger)
		if err != nil {
			logger.Warn("smart chef unavailable", zap.Error(err))
		}
		clipService = clipper.New(textGen)
	}

	return app.New(logger, rRepo, pRepo, nRepo, sRepo, chefService, clipService, metricsStore, degraded), cleanup
}

func buildAI(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.TextGenerator, llm.ImageGenerator) {
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("failed to initialize Gemini client", zap.Error(err))
			return nil, nil
		}
		return client, client
	}
	if cfg.OpenRouterAPIKey != "" {
		// OpenRouter only generates text; images fall back to placeholders.
		return llm.NewOpenRouterClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel), nil
	}
	return nil, nil
}

func run(ctx context.Context, a *app.App, cfg *config.Config, command string, args []string) error {
	switch command {
	case "recipes":
		return cmdRecipes(a, args)
	case "show":
		return cmdShow(a, args)
	case "rm":
		return cmdRemove(a, args)
	case "plan":
		return cmdPlan(a, args)
	case "shop":
		return cmdShop(a)
	case "notes":
		return cmdNotes(a, args)
	case "suggest":
		return cmdSuggest(ctx, a, args)
	case "lookup":
		return cmdLookup(ctx, a, args)
	case "clip":
		return cmdClip(ctx, a, args)
	case "name":
		return cmdName(ctx, a, args)
	case "theme":
		return cmdTheme(ctx, a, args)
	case "usage":
		return cmdUsage(ctx, a, args)
	case "status":
		return cmdStatus(ctx, a, cfg)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
		return nil
	}
}

func cmdRecipes(a *app.App, args []string) error {
	fs := flag.NewFlagSet("recipes", flag.ExitOnError)
	query := fs.String("q", "", "Search titles and ingredients")
	tag := fs.String("tag", "", "Filter by tag")
	cuisine := fs.String("cuisine", "", "Filter by cuisine")
	method := fs.String("method", "", "Filter by cooking method")
	dietary := fs.String("dietary", "", "Comma-separated dietary restrictions (all must match)")
	fs.Parse(args)

	f := recipe.Filter{
		Query:         *query,
		Tag:           recipe.Tag(*tag),
		Cuisine:       recipe.Cuisine(*cuisine),
		CookingMethod: recipe.CookingMethod(*method),
	}
	for _, d := range strings.Split(*dietary, ",") {
		if d = strings.TrimSpace(d); d != "" {
			f.DietaryRestrictions = append(f.DietaryRestrictions, recipe.DietaryRestriction(d))
		}
	}

	list := a.Filter(f)
	if len(list) == 0 {
		fmt.Println("No recipes match.")
		return nil
	}
	for _, r := range list {
		fmt.Printf("%-28s  %s (%d min, %d kcal)\n", r.ID, r.Title, r.PrepTime, r.Calories)
	}
	return nil
}

func cmdShow(a *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chefmate show <recipe-id>")
	}
	for _, r := range a.Recipes() {
		if r.ID == args[0] {
			fmt.Println(recipe.ShareText(r))
			return nil
		}
	}
	return fmt.Errorf("no recipe with id %s", args[0])
}

func cmdRemove(a *app.App, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chefmate rm <recipe-id>")
	}
	a.DeleteRecipe(args[0])
	fmt.Println("Recipe deleted.")
	return nil
}

func cmdPlan(a *app.App, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		printPlan(a)
		return nil
	}

	switch args[0] {
	case "set":
		fs := flag.NewFlagSet("plan set", flag.ExitOnError)
		day := fs.String("day", "", "Day id (sat..fri)")
		slot := fs.String("slot", "", "Meal slot (breakfast, lunch, dinner)")
		recipeID := fs.String("recipe", "", "Recipe id")
		fs.Parse(args[1:])
		if err := a.SetMeal(*day, plan.Slot(*slot), *recipeID); err != nil {
			return err
		}
		fmt.Println("Plan updated.")
		return nil
	case "clear":
		fs := flag.NewFlagSet("plan clear", flag.ExitOnError)
		day := fs.String("day", "", "Day id (sat..fri)")
		slot := fs.String("slot", "", "Meal slot (breakfast, lunch, dinner)")
		fs.Parse(args[1:])
		if err := a.ClearMeal(*day, plan.Slot(*slot)); err != nil {
			return err
		}
		fmt.Println("Plan updated.")
		return nil
	default:
		return fmt.Errorf("usage: chefmate plan [show|set|clear]")
	}
}

func printPlan(a *app.App) {
	p := a.Plan()
	byID := make(map[string]recipe.Recipe)
	for _, r := range a.Recipes() {
		byID[r.ID] = r
	}

	resolve := func(id string) string {
		if id == "" {
			return "-"
		}
		if r, ok := byID[id]; ok {
			return r.Title
		}
		return "-" // dangling reference renders as empty
	}

	fmt.Println("=== WEEKLY PLAN ===")
	for _, d := range plan.Days {
		dp := p[d.ID]
		fmt.Printf("%-10s breakfast: %-24s lunch: %-24s dinner: %s\n",
			d.Name, resolve(dp.Meals.Breakfast), resolve(dp.Meals.Lunch), resolve(dp.Meals.Dinner))
	}
}

func cmdShop(a *app.App) error {
	groups := a.ShoppingList()
	if len(groups) == 0 {
		fmt.Println("The list is empty. Add meals to the weekly plan to generate a shopping list.")
		return nil
	}

	fmt.Println("=== SHOPPING LIST ===")
	for _, g := range groups {
		if g.Count > 1 {
			fmt.Printf("\n%s (planned %d times)\n", g.Recipe.Title, g.Count)
		} else {
			fmt.Printf("\n%s\n", g.Recipe.Title)
		}
		for _, ing := range g.Recipe.Ingredients {
			fmt.Printf("  [ ] %s: %s\n", ing.Name, ing.Amount)
		}
	}
	return nil
}

func cmdNotes(a *app.App, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		list := a.Notes()
		if len(list) == 0 {
			fmt.Println("No notes.")
			return nil
		}
		for _, n := range list {
			mark := " "
			if n.Completed {
				mark = "x"
			}
			fmt.Printf("[%s] %-16s %s\n", mark, n.ID, n.Text)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: chefmate notes add <text>")
		}
		n := a.AddNote(strings.Join(args[1:], " "))
		fmt.Printf("Note %s added.\n", n.ID)
		return nil
	case "done":
		if len(args) < 2 {
			return fmt.Errorf("usage: chefmate notes done <note-id>")
		}
		if err := a.ToggleNote(args[1]); err != nil {
			return err
		}
		fmt.Println("Note toggled.")
		return nil
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("usage: chefmate notes rm <note-id>")
		}
		a.DeleteNote(args[1])
		fmt.Println("Note deleted.")
		return nil
	default:
		return fmt.Errorf("usage: chefmate notes [list|add|done|rm]")
	}
}

func cmdSuggest(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	ingredients := fs.String("ingredients", "", "Comma-separated ingredients you have (empty = anything popular)")
	cuisine := fs.String("cuisine", "", "Preferred cuisine")
	meal := fs.String("meal", "", "Meal type (breakfast, lunch, dinner, dessert)")
	diet := fs.Bool("diet", false, "Only healthy, diet-friendly recipes")
	save := fs.Int("save", 0, "Save suggestion N (1-based) to the library")
	fs.Parse(args)

	fmt.Println("Asking the smart chef...")
	results, err := a.Suggest(ctx, app.SuggestRequest{
		Ingredients: *ingredients,
		Cuisine:     *cuisine,
		MealType:    *meal,
		Diet:        *diet,
	})
	if err != nil {
		return err
	}

	printSuggestions(results)
	return maybeSave(a, results, *save)
}

func cmdLookup(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	save := fs.Bool("save", false, "Save the recipe to the library")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: chefmate lookup [-save] <dish name>")
	}

	fmt.Println("Asking the smart chef...")
	results, err := a.LookupRecipe(ctx, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	printSuggestions(results)
	if *save {
		return maybeSave(a, results, 1)
	}
	return nil
}

func cmdClip(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("clip", flag.ExitOnError)
	save := fs.Bool("save", false, "Save the imported recipe to the library")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: chefmate clip [-save] <url>")
	}

	rec, err := a.ClipRecipe(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Println(recipe.ShareText(*rec))
	if *save {
		if err := a.AddRecipe(*rec); err != nil {
			return err
		}
		fmt.Println("Recipe saved to the library.")
	}
	return nil
}

func printSuggestions(results []recipe.Recipe) {
	if len(results) == 0 {
		fmt.Println("The chef had no ideas this time.")
		return
	}
	for i, r := range results {
		fmt.Printf("\n%d. %s (%d min, %d kcal)\n   %s\n", i+1, r.Title, r.PrepTime, r.Calories, r.Description)
	}
}

func maybeSave(a *app.App, results []recipe.Recipe, n int) error {
	if n <= 0 {
		return nil
	}
	if n > len(results) {
		return fmt.Errorf("no suggestion %d (got %d)", n, len(results))
	}
	if _, err := a.SaveSuggestion(results[n-1].ID); err != nil {
		if errors.Is(err, app.ErrDuplicateRecipe) {
			fmt.Println("That recipe is already in your library.")
			return nil
		}
		return err
	}
	fmt.Printf("Saved %q to the library.\n", results[n-1].Title)
	return nil
}

func cmdName(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		name := a.Username(ctx)
		if name == "" {
			fmt.Println("No name set. Use: chefmate name <your name>")
			return nil
		}
		fmt.Printf("Hello, chef %s!\n", name)
		return nil
	}
	if err := a.SetUsername(ctx, strings.Join(args, " ")); err != nil {
		return err
	}
	fmt.Println("Name saved.")
	return nil
}

func cmdTheme(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		fmt.Printf("Theme: %s\n", a.Theme(ctx))
		return nil
	}
	if err := a.SetTheme(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Theme saved.")
	return nil
}

func cmdUsage(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("usage", flag.ExitOnError)
	days := fs.Int("days", 7, "How many days back to report")
	prune := fs.Int("prune", 0, "Delete records older than N days")
	fs.Parse(args)

	if *prune > 0 {
		deleted, err := a.PruneMetrics(ctx, *prune)
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d old records.\n", deleted)
	}

	usage, err := a.DailyUsage(ctx, *days)
	if err != nil {
		return err
	}
	if len(usage) == 0 {
		fmt.Println("No AI usage recorded.")
		return nil
	}
	fmt.Printf("%-12s %8s %8s %6s\n", "DAY", "PROMPT", "REPLY", "CALLS")
	for _, u := range usage {
		fmt.Printf("%-12s %8d %8d %6d\n", u.Date, u.TotalPrompt, u.TotalCompletion, u.TotalCalls)
	}
	return nil
}

func cmdStatus(ctx context.Context, a *app.App, cfg *config.Config) error {
	fmt.Printf("Recipes:  %d\n", len(a.Recipes()))
	fmt.Printf("Notes:    %d\n", len(a.Notes()))
	fmt.Printf("Shopping: %d recipe groups\n", len(a.ShoppingList()))
	if a.Degraded() {
		fmt.Println("Storage:  in-memory session (local database unavailable)")
	} else {
		fmt.Printf("Storage:  %s (%s)\n", cfg.DatabasePath, metrics.DatabaseSize(cfg.DatabasePath))
	}
	if name := a.Username(ctx); name != "" {
		fmt.Printf("Chef:     %s\n", name)
	}
	return nil
}

func printUsage() {
	fmt.Println("Usage: chefmate <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  recipes     List the recipe library (supports -q, -tag, -cuisine, -method, -dietary)")
	fmt.Println("  show        Print a recipe as shareable text")
	fmt.Println("  rm          Delete a recipe from the library")
	fmt.Println("  plan        Show or edit the weekly plan (set/clear -day -slot [-recipe])")
	fmt.Println("  shop        Print the shopping list derived from the plan")
	fmt.Println("  notes       Manage household notes (list/add/done/rm)")
	fmt.Println("  suggest     Ask the smart chef for recipes from your ingredients")
	fmt.Println("  lookup      Ask the smart chef for a dish by name")
	fmt.Println("  clip        Import a recipe from a web page")
	fmt.Println("  name        Show or set your chef name")
	fmt.Println("  theme       Show or set the theme preference (dark/light)")
	fmt.Println("  usage       Show AI token usage per day (-days, -prune)")
	fmt.Println("  status      Show library and storage status")
}
