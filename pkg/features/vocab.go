package features

// Vocabulary lists used by the lexical extractor. These are fixed, read-only
// configuration; matching is case-insensitive substring matching throughout.

// MeasureUnits are cooking measurement units.
var MeasureUnits = []string{"g", "kg", "ml", "l", "tbsp", "tsp", "cup", "cups", "oz", "°c", "°f"}

// CookingVerbs are imperative verbs common in recipe instructions.
var CookingVerbs = []string{
	"preheat",
	"mix",
	"stir",
	"bake",
	"boil",
	"simmer",
	"chop",
	"fry",
	"whisk",
	"serve",
}

// IngredientSectionTerms mark the ingredient/yield section of a recipe.
var IngredientSectionTerms = []string{"ingredients", "serves", "makes", "yield"}

// StepSectionTerms mark the instruction section of a recipe.
var StepSectionTerms = []string{"instructions", "method", "directions", "steps"}

// WorkoutTerms are training-programming vocabulary.
var WorkoutTerms = []string{"sets", "reps", "rest", "warm-up", "cooldown", "amrap", "emom", "rounds"}

// WorkoutBodyParts are muscle groups named in workout plans.
var WorkoutBodyParts = []string{"legs", "chest", "back", "shoulders", "glutes", "core", "abs"}

// QuoteMarkers are glyphs that signal quoted prose or an attribution line:
// em-dash, hyphen, curly double quotes and the straight double quote.
var QuoteMarkers = []string{"—", "-", "“", "”", `"`}
