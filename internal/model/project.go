package model

import (
	"time"

	"github.com/mbark223/playablelab-sub000/internal/playable"
)

// Project is a saved creative.
type Project struct {
	ID        string
	Config    playable.Configuration
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectSummary is the listing view of a project.
type ProjectSummary struct {
	ID        string
	Name      string
	Mode      playable.Mode
	UpdatedAt time.Time
}

// Summary returns the listing view of p.
func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{
		ID:        p.ID,
		Name:      p.Config.Name,
		Mode:      p.Config.Mode,
		UpdatedAt: p.UpdatedAt,
	}
}

// ExportRecord describes one produced bundle.
type ExportRecord struct {
	ID        string
	ProjectID string
	ChannelID string
	FileName  string
	SizeBytes int64
	Checksum  string
	CreatedAt time.Time
}
