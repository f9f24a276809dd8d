package types

// Recipe is the structured recipe returned to API callers. Every field is
// produced by the language model.
type Recipe struct {
	Title       string   `json:"titulo"`
	Servings    string   `json:"porcionamento"`
	PrepTime    string   `json:"tempo_de_preparo"`
	Ingredients []string `json:"ingredientes"`
	Steps       []string `json:"modo_de_fazer"`
}

// RecipeFields lists the JSON keys every Recipe must carry, in schema order.
var RecipeFields = []string{"titulo", "porcionamento", "tempo_de_preparo", "ingredientes", "modo_de_fazer"}
