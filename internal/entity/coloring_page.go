package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Difficulty levels shown on the coloring page card.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ColoringPage is a printable picture offered for download.
type ColoringPage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	PDFURL      string    `json:"pdf_url"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Tags        []string  `json:"tags"`
	Difficulty  string    `json:"difficulty"`
	Downloads   int64     `json:"downloads"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewColoringPage(title, slug string) (*ColoringPage, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	return &ColoringPage{
		ID:         uuid.New().String(),
		Title:      title,
		Slug:       slug,
		Tags:       []string{},
		Difficulty: DifficultyEasy,
		CreatedAt:  time.Now(),
	}, nil
}

func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}
