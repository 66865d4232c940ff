package category

// Category is a quiz category as exposed over the API. Inactive categories
// stay listed here but their questions are hidden from readers.
type Category struct {
	Title  string `json:"title"`
	Active bool   `json:"active"`
}
