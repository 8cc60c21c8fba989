package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ModelState string

const (
	ModelStateLive     ModelState = "LIVE"
	ModelStateArchived ModelState = "ARCHIVED"
)

type RegisteredModel struct {
	ID          uuid.UUID  `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Catalog     string     `json:"catalog"`
	Schema      string     `json:"schema"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	State       ModelState `json:"state"`

	// Computed fields (populated by repository)
	VersionCount int           `json:"version_count"`
	Aliases      map[Alias]int `json:"aliases,omitempty"` // alias -> version number
}

// FullName is the catalog-qualified model name, e.g.
// "main.news_classifier.news_classifier".
func (m *RegisteredModel) FullName() string {
	return fmt.Sprintf("%s.%s.%s", m.Catalog, m.Schema, m.Name)
}
