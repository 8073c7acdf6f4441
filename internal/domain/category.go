package domain

// Category is the domain model for book categories.
type Category struct {
	Metadata
	Name        string `json:"name"`
	Description string `json:"description"`
}
