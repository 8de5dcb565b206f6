package models

// ListingResponse represents one filtered listing returned to the view layer
type ListingResponse[T any] struct {
	Items   []T    `json:"items"`
	Total   int    `json:"total"`
	Sort    string `json:"sort"`
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"` // Empty-state text when nothing matched
}
