package models

// BlogPost represents a single published article
type BlogPost struct {
	ID          string   `json:"id" yaml:"id"`
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
	Excerpt     string   `json:"excerpt" yaml:"excerpt"`
	Content     string   `json:"content,omitempty" yaml:"content"` // HTML
	Image       string   `json:"image" yaml:"image"`
	PublishedAt string   `json:"publishedAt,omitempty" yaml:"publishedAt"` // RFC3339
}
