package shopping

// ItemKey identifies a single ingredient line within the derived list.
type ItemKey struct {
	RecipeID   string
	Ingredient int
}

// Checklist tracks which shopping-list items have been ticked off. It lives
// only for the session: check state is intentionally never persisted, because
// the shopping list is a transient view over the plan, not a durable entity.
type Checklist map[ItemKey]bool

// NewChecklist returns an empty checklist.
func NewChecklist() Checklist {
	return make(Checklist)
}

// Toggle flips the check state for an item.
func (c Checklist) Toggle(recipeID string, ingredient int) {
	key := ItemKey{RecipeID: recipeID, Ingredient: ingredient}
	c[key] = !c[key]
}

// Checked reports whether an item is ticked off.
func (c Checklist) Checked(recipeID string, ingredient int) bool {
	return c[ItemKey{RecipeID: recipeID, Ingredient: ingredient}]
}
