package types

// MinIngredients is the smallest ingredient list a recipe request may carry
const MinIngredients = 3

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
