package recipe

import "strings"

// Meal-type classification. Applied once when a recipe crosses the
// data-model boundary without an explicit meal-type set; the planner
// algorithms only ever see the classified result.

// classifierOrder fixes the scan order so inference is deterministic
var classifierOrder = []MealType{
	MealTypeBreakfast,
	MealTypeLunch,
	MealTypeDinner,
	MealTypeSnack,
}

// mealTypeKeywords maps each meal type to dish words that signal it.
// Matching is a plain substring scan over the lowercase title and tags;
// one hit per type is enough.
var mealTypeKeywords = map[MealType][]string{
	MealTypeBreakfast: {
		"oatmeal", "pancake", "waffle", "egg", "cereal", "toast",
		"granola", "smoothie", "muffin", "bagel", "porridge",
	},
	MealTypeLunch: {
		"sandwich", "salad", "wrap", "soup", "quesadilla", "flatbread",
	},
	MealTypeDinner: {
		"roast", "casserole", "pasta", "curry", "grilled", "stir fry",
		"chicken", "beef", "pork", "salmon", "stew", "lasagna", "bake",
	},
	MealTypeSnack: {
		"bar", "cookie", "cracker", "chip", "popcorn", "bite", "trail mix",
	},
}

// versatileDishes are egg dishes that households serve at breakfast or
// lunch interchangeably; they force membership in both slots. The bare
// "omelet" spelling also matches "omelette".
var versatileDishes = []string{"omelet", "frittata", "quiche"}

// InferMealTypes decides which meal slots a recipe fits from its title
// and tags. Tags that are themselves valid meal-type tokens are
// authoritative and returned directly. Otherwise keywords vote per
// type, versatile dishes add breakfast and lunch, and a recipe nothing
// matched defaults to dinner. The result is never empty.
func InferMealTypes(title string, tags []string) MealTypes {
	var tagged MealTypes
	for _, tag := range tags {
		if mt, ok := ParseMealType(tag); ok && !tagged.Contains(mt) {
			tagged = append(tagged, mt)
		}
	}
	if len(tagged) > 0 {
		return tagged
	}

	text := strings.ToLower(title)
	if len(tags) > 0 {
		text += " " + strings.ToLower(strings.Join(tags, " "))
	}

	var inferred MealTypes
	for _, mt := range classifierOrder {
		for _, keyword := range mealTypeKeywords[mt] {
			if strings.Contains(text, keyword) {
				inferred = append(inferred, mt)
				break
			}
		}
	}

	for _, dish := range versatileDishes {
		if strings.Contains(text, dish) {
			if !inferred.Contains(MealTypeBreakfast) {
				inferred = append(inferred, MealTypeBreakfast)
			}
			if !inferred.Contains(MealTypeLunch) {
				inferred = append(inferred, MealTypeLunch)
			}
			break
		}
	}

	if len(inferred) == 0 {
		return MealTypes{MealTypeDinner}
	}
	return inferred
}
