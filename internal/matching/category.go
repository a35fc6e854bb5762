package matching

import "strings"

// Category is a coarse grocery department used as a matching hint.
type Category string

const (
	CategoryProduce  Category = "produce"
	CategoryDairy    Category = "dairy"
	CategoryMeat     Category = "meat"
	CategorySeafood  Category = "seafood"
	CategoryBakery   Category = "bakery"
	CategoryPantry   Category = "pantry"
	CategoryFrozen   Category = "frozen"
	CategoryBeverage Category = "beverage"
	CategoryUnknown  Category = ""
)

// categoryKeywords maps ingredient-name keywords to their expected grocery
// department. Kept as a flat table so rules stay independently testable;
// first matching keyword wins, longer keywords are listed before their
// prefixes where it matters ("green onion" before "onion" is not needed
// because both land in produce).
var categoryKeywords = []struct {
	keyword  string
	category Category
}{
	// derived pantry goods first: "chicken broth" or "tomato sauce" must
	// classify by the product form, not the source ingredient
	{"broth", CategoryPantry}, {"stock", CategoryPantry}, {"sauce", CategoryPantry},
	{"bouillon", CategoryPantry}, {"paste", CategoryPantry}, {"powder", CategoryPantry},
	// produce
	{"tomato", CategoryProduce}, {"onion", CategoryProduce}, {"garlic", CategoryProduce},
	{"cabbage", CategoryProduce}, {"lettuce", CategoryProduce}, {"carrot", CategoryProduce},
	{"potato", CategoryProduce}, {"pepper", CategoryProduce}, {"celery", CategoryProduce},
	{"cucumber", CategoryProduce}, {"spinach", CategoryProduce}, {"broccoli", CategoryProduce},
	{"mushroom", CategoryProduce}, {"avocado", CategoryProduce}, {"lemon", CategoryProduce},
	{"lime", CategoryProduce}, {"apple", CategoryProduce}, {"banana", CategoryProduce},
	{"cilantro", CategoryProduce}, {"parsley", CategoryProduce}, {"basil", CategoryProduce},
	{"ginger", CategoryProduce}, {"scallion", CategoryProduce}, {"zucchini", CategoryProduce},
	// dairy
	{"milk", CategoryDairy}, {"butter", CategoryDairy}, {"cheese", CategoryDairy},
	{"yogurt", CategoryDairy}, {"cream", CategoryDairy}, {"egg", CategoryDairy},
	{"mozzarella", CategoryDairy}, {"cheddar", CategoryDairy}, {"parmesan", CategoryDairy},
	// meat
	{"chicken", CategoryMeat}, {"beef", CategoryMeat}, {"pork", CategoryMeat},
	{"bacon", CategoryMeat}, {"sausage", CategoryMeat}, {"turkey", CategoryMeat},
	{"ham", CategoryMeat}, {"lamb", CategoryMeat}, {"steak", CategoryMeat},
	// seafood
	{"salmon", CategorySeafood}, {"shrimp", CategorySeafood}, {"tuna", CategorySeafood},
	{"cod", CategorySeafood}, {"tilapia", CategorySeafood}, {"crab", CategorySeafood},
	// bakery
	{"bread", CategoryBakery}, {"bun", CategoryBakery}, {"roll", CategoryBakery},
	{"tortilla", CategoryBakery}, {"bagel", CategoryBakery},
	{"pie crust", CategoryBakery}, {"pizza dough", CategoryBakery}, {"pie shell", CategoryBakery},
	// frozen
	{"frozen", CategoryFrozen}, {"ice cream", CategoryFrozen},
	// beverage
	{"juice", CategoryBeverage}, {"coffee", CategoryBeverage}, {"tea", CategoryBeverage},
	{"wine", CategoryBeverage}, {"soda", CategoryBeverage},
	// pantry
	{"flour", CategoryPantry}, {"sugar", CategoryPantry}, {"salt", CategoryPantry},
	{"oil", CategoryPantry}, {"vinegar", CategoryPantry}, {"rice", CategoryPantry},
	{"pasta", CategoryPantry}, {"noodle", CategoryPantry}, {"bean", CategoryPantry},
	{"spice", CategoryPantry}, {"honey", CategoryPantry}, {"mustard", CategoryPantry},
	{"mayonnaise", CategoryPantry}, {"ketchup", CategoryPantry}, {"miso", CategoryPantry},
	{"dashi", CategoryPantry}, {"mirin", CategoryPantry},
	{"panko", CategoryPantry}, {"cornstarch", CategoryPantry}, {"baking", CategoryPantry},
}

// categoryTags maps each coarse category to substrings expected in the
// catalog's own category tags. The catalog uses department-style labels
// ("Produce", "Dairy & Eggs", "Meat & Seafood"), so matching is substring
// based and case-insensitive.
var categoryTags = map[Category][]string{
	CategoryProduce:  {"produce", "fruit", "vegetable"},
	CategoryDairy:    {"dairy", "egg", "cheese"},
	CategoryMeat:     {"meat", "poultry", "deli"},
	CategorySeafood:  {"seafood", "fish"},
	CategoryBakery:   {"bakery", "bread", "baked"},
	CategoryPantry:   {"pantry", "baking", "condiment", "sauce", "canned", "pasta", "grain", "international"},
	CategoryFrozen:   {"frozen"},
	CategoryBeverage: {"beverage", "drink", "coffee", "tea"},
}

// ClassifyCategory derives a coarse grocery category from an ingredient
// name. Unrecognized names return CategoryUnknown, which downgrades the
// category signal to neutral rather than penalizing every candidate.
func ClassifyCategory(name string) Category {
	n := strings.ToLower(FoldDiacritics(name))
	for _, entry := range categoryKeywords {
		if strings.Contains(n, entry.keyword) {
			return entry.category
		}
	}
	return CategoryUnknown
}

// categoryMatches reports whether any of the candidate's category tags
// belong to the hinted department.
func categoryMatches(hint Category, tags []string) bool {
	expected, ok := categoryTags[hint]
	if !ok {
		return false
	}
	for _, tag := range tags {
		t := strings.ToLower(tag)
		for _, e := range expected {
			if strings.Contains(t, e) {
				return true
			}
		}
	}
	return false
}
