package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BlogPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"cover_url"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewBlogPost(title, slug, content string) (*BlogPost, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	return &BlogPost{
		ID:        uuid.New().String(),
		Title:     title,
		Slug:      slug,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// Publish marks the post visible. The first publication time is kept on republish.
func (p *BlogPost) Publish(now time.Time) {
	p.Published = true
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}

func (p *BlogPost) Unpublish() {
	p.Published = false
}
