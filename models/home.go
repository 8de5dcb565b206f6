package models

// FAQ represents a frequently asked question
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Testimonial represents a customer quote shown on the home page
type Testimonial struct {
	Quote    string `json:"quote" yaml:"quote"`
	Name     string `json:"name" yaml:"name"`
	Approved bool   `json:"-" yaml:"approved"`
}

// HomeData represents the payload for the home page sections
type HomeData struct {
	FeaturedDestinations []Destination `json:"featuredDestinations"`
	FeaturedHotels       []Hotel       `json:"featuredHotels"`
	FAQs                 []FAQ         `json:"faqs"`
	Testimonials         []Testimonial `json:"testimonials"`
}
