package domain

// Book is the domain model for catalogue entries.
type Book struct {
	Metadata
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	CategoryIDs       []string `json:"categoryIds"`
	PublishedYear     int      `json:"publishedYear"`
	Quantity          int      `json:"quantity"`
	AvailableQuantity int      `json:"availableQuantity"`
}
