// Package content stores the portfolio's projects and blog posts in SQLite.
package content

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	portfolio "github.com/Nemesis62542/nemesis-portfolio"
)

var (
	// ErrNotFound is returned when no entry or setting has the requested key.
	ErrNotFound = errors.New("content: not found")
	// ErrInvalid wraps validation failures from Upsert.
	ErrInvalid = errors.New("content: invalid entry")
)

// Project is a portfolio work shown on the projects page.
type Project struct {
	ID          string   `json:"id" toml:"id"`
	Title       string   `json:"title" toml:"title"`
	Description string   `json:"description" toml:"description"`
	ImageURL    string   `json:"imageUrl" toml:"image_url"`
	Tags        []string `json:"tags" toml:"tags"`
	ProjectURL  string   `json:"projectUrl,omitempty" toml:"project_url"`
	SourceURL   string   `json:"sourceUrl,omitempty" toml:"source_url"`
}

// Post is a blog article. Content is Markdown.
type Post struct {
	ID      string `json:"id" toml:"id"`
	Title   string `json:"title" toml:"title"`
	Date    string `json:"date" toml:"date"`
	Excerpt string `json:"excerpt" toml:"excerpt"`
	Content string `json:"content" toml:"content"`
}

// placeholderURL is the "no page yet" link the site uses for unreleased work.
const placeholderURL = "#"

// Validate checks required fields and link syntax.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.ImageURL, is.URL),
		validation.Field(&p.ProjectURL, validation.When(p.ProjectURL != placeholderURL, is.URL)),
		validation.Field(&p.SourceURL, is.URL),
		validation.Field(&p.Tags, validation.Each(validation.Required)),
	)
}

// Validate checks required fields, the YYYY-MM-DD date and that the body
// is text rather than binary data.
func (p Post) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&p.Content, validation.By(markdownText)),
	)
}

// sanitized returns p with control characters removed from the text that
// ends up on a terminal.
func (p Project) sanitized() Project {
	p.Title = portfolio.Sanitize(p.Title)
	p.Description = portfolio.Sanitize(p.Description)
	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, tag := range p.Tags {
			tags[i] = portfolio.Sanitize(tag)
		}
		p.Tags = tags
	}
	return p
}

func (p Post) sanitized() Post {
	p.Title = portfolio.Sanitize(p.Title)
	p.Excerpt = portfolio.Sanitize(p.Excerpt)
	p.Content = portfolio.Sanitize(p.Content)
	return p
}

func markdownText(value interface{}) error {
	s, _ := value.(string)
	return portfolio.ValidateInput([]byte(s))
}

// NewProjectID returns a fresh project id.
func NewProjectID() string {
	return "project-" + uuid.NewString()
}

// NewPostID derives a post id from its title, falling back to a random id for
// titles with nothing to transliterate.
func NewPostID(title string) string {
	if id := slug.Make(strings.TrimSpace(title)); id != "" {
		return id
	}
	return "post-" + uuid.NewString()
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}
