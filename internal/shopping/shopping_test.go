package shopping

import (
	"testing"

	"chefmate/internal/plan"
	"chefmate/internal/recipe"
)

func testLibrary() []recipe.Recipe {
	return []recipe.Recipe{
		{ID: "a", Title: "Shakshuka", Ingredients: []recipe.Ingredient{{Name: "eggs", Amount: "4"}, {Name: "tomatoes", Amount: "3"}}},
		{ID: "b", Title: "Pasta", Ingredients: []recipe.Ingredient{{Name: "pasta", Amount: "250g"}}},
	}
}

func TestBuild(t *testing.T) {
	t.Run("GroupsByRecipeWithCounts", func(t *testing.T) {
		p := plan.New()
		p, _ = plan.SetMeal(p, "sat", plan.Breakfast, "a")
		p, _ = plan.SetMeal(p, "sun", plan.Lunch, "b")
		p, _ = plan.SetMeal(p, "mon", plan.Dinner, "a")

		groups := Build(p, testLibrary())
		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}
		if groups[0].Recipe.ID != "a" || groups[0].Count != 2 {
			t.Errorf("Expected first group a with count 2, got %s/%d", groups[0].Recipe.ID, groups[0].Count)
		}
		if groups[1].Recipe.ID != "b" || groups[1].Count != 1 {
			t.Errorf("Expected second group b with count 1, got %s/%d", groups[1].Recipe.ID, groups[1].Count)
		}
	})

	t.Run("FirstOccurrenceOrder", func(t *testing.T) {
		// b appears earlier in the week scan than a, so it leads the list
		// even though a is first in the library.
		p := plan.New()
		p, _ = plan.SetMeal(p, "sat", plan.Dinner, "b")
		p, _ = plan.SetMeal(p, "sun", plan.Breakfast, "a")

		groups := Build(p, testLibrary())
		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}
		if groups[0].Recipe.ID != "b" {
			t.Errorf("Expected b first by scan order, got %s", groups[0].Recipe.ID)
		}
	})

	t.Run("SlotOrderWithinDay", func(t *testing.T) {
		p := plan.New()
		p, _ = plan.SetMeal(p, "mon", plan.Dinner, "a")
		p, _ = plan.SetMeal(p, "mon", plan.Breakfast, "b")

		groups := Build(p, testLibrary())
		if groups[0].Recipe.ID != "b" {
			t.Errorf("Expected breakfast entry to lead within a day, got %s", groups[0].Recipe.ID)
		}
	})

	t.Run("DanglingReferenceSkipped", func(t *testing.T) {
		p := plan.New()
		p, _ = plan.SetMeal(p, "sat", plan.Lunch, "deleted-recipe")
		p, _ = plan.SetMeal(p, "sun", plan.Lunch, "a")

		groups := Build(p, testLibrary())
		if len(groups) != 1 {
			t.Fatalf("Expected dangling reference to be skipped, got %d groups", len(groups))
		}
		if groups[0].Recipe.ID != "a" {
			t.Errorf("Expected group a, got %s", groups[0].Recipe.ID)
		}
	})

	t.Run("EmptyPlan", func(t *testing.T) {
		if groups := Build(plan.New(), testLibrary()); len(groups) != 0 {
			t.Errorf("Expected no groups for an empty plan, got %d", len(groups))
		}
	})
}

func TestChecklist(t *testing.T) {
	c := NewChecklist()

	if c.Checked("a", 0) {
		t.Errorf("Expected a fresh checklist to be unchecked")
	}

	c.Toggle("a", 0)
	if !c.Checked("a", 0) {
		t.Errorf("Expected item to be checked after toggle")
	}
	if c.Checked("a", 1) || c.Checked("b", 0) {
		t.Errorf("Toggle leaked into other items")
	}

	c.Toggle("a", 0)
	if c.Checked("a", 0) {
		t.Errorf("Expected item to be unchecked after a second toggle")
	}
}
