package shopping

import (
	"chefmate/internal/plan"
	"chefmate/internal/recipe"
)

// Group is one shopping-list entry: a recipe and how many plan slots
// reference it. The list is grouped per recipe; ingredients are never merged
// across recipes.
type Group struct {
	Recipe recipe.Recipe
	Count  int
}

// Build derives the shopping list from the current plan and recipe library.
//
// It is a pure function: days are scanned in the fixed weekly order and slots
// breakfast, lunch, dinner; groups appear in order of first occurrence.
// References to recipes missing from the library are skipped silently, since
// plan slots hold weak references.
func Build(p plan.WeeklyPlan, recipes []recipe.Recipe) []Group {
	byID := make(map[string]recipe.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}

	counts := make(map[string]int)
	var order []string
	for _, day := range plan.Days {
		dp, ok := p[day.ID]
		if !ok {
			continue
		}
		for _, slot := range plan.Slots {
			id := dp.Meals.Get(slot)
			if id == "" {
				continue
			}
			if counts[id] == 0 {
				order = append(order, id)
			}
			counts[id]++
		}
	}

	var groups []Group
	for _, id := range order {
		rec, ok := byID[id]
		if !ok {
			continue // dangling reference
		}
		groups = append(groups, Group{Recipe: rec, Count: counts[id]})
	}
	return groups
}
