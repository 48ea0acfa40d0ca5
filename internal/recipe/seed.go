package recipe

// Seed returns the built-in starter recipes used on first run, and as the
// in-memory library when local storage is unavailable.
func Seed() []Recipe {
	return []Recipe{
		{
			ID:          "seed-shakshuka",
			Title:       "Egyptian Shakshuka",
			Description: "Eggs poached in a tomato and pepper sauce, a classic breakfast.",
			Ingredients: []Ingredient{
				{Name: "eggs", Amount: "4"},
				{Name: "tomatoes", Amount: "3"},
				{Name: "onion", Amount: "1 medium"},
				{Name: "green pepper", Amount: "1"},
			},
			Steps: []string{
				"Chop the onion and tomatoes",
				"Sweat the onion until soft",
				"Add the tomatoes and let the sauce thicken",
				"Crack in the eggs and stir until just set",
			},
			PrepTime:            15,
			Calories:            250,
			Image:               "https://picsum.photos/seed/shakshuka/400/300",
			Tags:                []Tag{TagQuick, TagEconomical, TagVegetarian},
			Cuisine:             CuisineEgyptian,
			CookingMethod:       MethodStovetop,
			DietaryRestrictions: []DietaryRestriction{DietGlutenFree, DietKeto},
		},
		{
			ID:          "seed-grilled-chicken-salad",
			Title:       "Grilled Chicken Salad",
			Description: "A protein-packed salad that fits any diet plan.",
			Ingredients: []Ingredient{
				{Name: "chicken breast", Amount: "200 g"},
				{Name: "lettuce", Amount: "1 cup"},
				{Name: "cucumber", Amount: "1"},
				{Name: "olive oil", Amount: "1 tbsp"},
			},
			Steps: []string{
				"Season the chicken and grill it",
				"Chop the vegetables",
				"Toss everything with olive oil and lemon",
			},
			PrepTime:            20,
			Calories:            350,
			Image:               "https://picsum.photos/seed/salad/400/300",
			Tags:                []Tag{TagDiet, TagQuick},
			Cuisine:             CuisineInternational,
			CookingMethod:       MethodGrilled,
			DietaryRestrictions: []DietaryRestriction{DietGlutenFree, DietDairyFree, DietKeto},
		},
		{
			ID:          "seed-pasta-bechamel",
			Title:       "Pasta Bechamel Bake",
			Description: "The classic baked pasta with minced beef and bechamel sauce.",
			Ingredients: []Ingredient{
				{Name: "penne pasta", Amount: "500 g"},
				{Name: "minced beef", Amount: "250 g"},
				{Name: "milk", Amount: "1 l"},
				{Name: "flour", Amount: "4 tbsp"},
			},
			Steps: []string{
				"Boil the pasta",
				"Brown the minced beef",
				"Make the bechamel sauce",
				"Layer everything and bake until golden",
			},
			PrepTime:      60,
			Calories:      600,
			Image:         "https://picsum.photos/seed/bechamel/400/300",
			Tags:          []Tag{TagMain},
			Cuisine:       CuisineEgyptian,
			CookingMethod: MethodBaked,
		},
	}
}
