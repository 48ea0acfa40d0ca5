package plan

import "fmt"

// Slot identifies one of the three meal slots in a day.
type Slot string

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
)

// Slots is the fixed slot iteration order used everywhere a plan is scanned.
var Slots = []Slot{Breakfast, Lunch, Dinner}

// Day pairs a stable day identifier with its display name.
type Day struct {
	ID   string
	Name string
}

// Days is the fixed weekly order. The week starts on Saturday.
var Days = []Day{
	{ID: "sat", Name: "Saturday"},
	{ID: "sun", Name: "Sunday"},
	{ID: "mon", Name: "Monday"},
	{ID: "tue", Name: "Tuesday"},
	{ID: "wed", Name: "Wednesday"},
	{ID: "thu", Name: "Thursday"},
	{ID: "fri", Name: "Friday"},
}

// Meals holds the recipe reference for each slot. An empty string means the
// slot is empty. References are weak: a recipe may be deleted from the
// library while still referenced here, and consumers must tolerate that.
type Meals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// Get returns the recipe ID in the given slot.
func (m Meals) Get(slot Slot) string {
	switch slot {
	case Breakfast:
		return m.Breakfast
	case Lunch:
		return m.Lunch
	case Dinner:
		return m.Dinner
	}
	return ""
}

func (m Meals) with(slot Slot, recipeID string) Meals {
	switch slot {
	case Breakfast:
		m.Breakfast = recipeID
	case Lunch:
		m.Lunch = recipeID
	case Dinner:
		m.Dinner = recipeID
	}
	return m
}

// DayPlan is the plan for a single day.
type DayPlan struct {
	DayID   string `json:"dayId"`
	DayName string `json:"dayName"`
	Meals   Meals  `json:"meals"`
}

// WeeklyPlan maps day IDs to day plans. A well-formed plan always has exactly
// one entry per configured day; use New to build one.
type WeeklyPlan map[string]DayPlan

// New returns an empty plan covering every configured day.
func New() WeeklyPlan {
	p := make(WeeklyPlan, len(Days))
	for _, d := range Days {
		p[d.ID] = DayPlan{DayID: d.ID, DayName: d.Name}
	}
	return p
}

// validSlot reports whether slot is one of the three configured slots.
func validSlot(slot Slot) bool {
	return slot == Breakfast || slot == Lunch || slot == Dinner
}

// SetMeal returns a copy of the plan with the slot set to recipeID,
// overwriting whatever was there. The recipe ID is not validated against the
// library. The input plan is never modified.
func SetMeal(p WeeklyPlan, dayID string, slot Slot, recipeID string) (WeeklyPlan, error) {
	if !validSlot(slot) {
		return nil, fmt.Errorf("unknown meal slot %q", slot)
	}
	day, ok := p[dayID]
	if !ok {
		return nil, fmt.Errorf("unknown day %q", dayID)
	}

	out := make(WeeklyPlan, len(p))
	for k, v := range p {
		out[k] = v
	}
	day.Meals = day.Meals.with(slot, recipeID)
	out[dayID] = day
	return out, nil
}

// ClearMeal returns a copy of the plan with the slot emptied.
func ClearMeal(p WeeklyPlan, dayID string, slot Slot) (WeeklyPlan, error) {
	return SetMeal(p, dayID, slot, "")
}
