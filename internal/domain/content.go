package domain

// ContentPage is a legal or informational page fetched from the content API.
type ContentPage struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
