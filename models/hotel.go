package models

// Hotel represents a single hotel listing
type Hotel struct {
	ID          string   `json:"id" yaml:"id"`
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	City        string   `json:"city" yaml:"city"`
	Stars       int      `json:"stars" yaml:"stars"`   // Star category, 1 to 5
	Rating      float64  `json:"rating" yaml:"rating"` // Guest rating used for sorting
	Price       int64    `json:"price" yaml:"price"`   // INR per night
	Image       string   `json:"image" yaml:"image"`
	Address     string   `json:"address,omitempty" yaml:"address"`
	Description string   `json:"description,omitempty" yaml:"description"` // HTML
	Amenities   []string `json:"amenities,omitempty" yaml:"amenities"`
	Featured    bool     `json:"featured" yaml:"featured"`
	Available   bool     `json:"available" yaml:"available"`
}
