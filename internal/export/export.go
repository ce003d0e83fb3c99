// Package export turns a configuration into a single-file HTML playable for
// one ad channel and records the result.
package export

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/mbark223/playablelab-sub000/internal/channel"
	"github.com/mbark223/playablelab-sub000/internal/model"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/repository"
	"github.com/mbark223/playablelab-sub000/internal/viewmodel"
	"github.com/mbark223/playablelab-sub000/internal/views"
)

// ErrBundleTooLarge is returned when the rendered bundle exceeds the
// channel's size limit.
var ErrBundleTooLarge = errors.New("bundle exceeds channel size limit")

type Pipeline struct {
	channels *channel.Catalog
	projects repository.ProjectRepository
	exports  repository.ExportRepository
	tx       repository.TxRunner
	dir      string
	now      func() time.Time
}

type Option func(*Pipeline)

// WithDir also writes every bundle into dir.
func WithDir(dir string) Option {
	return func(p *Pipeline) { p.dir = dir }
}

func WithClock(fn func() time.Time) Option {
	return func(p *Pipeline) { p.now = fn }
}

func NewPipeline(channels *channel.Catalog, projects repository.ProjectRepository, exports repository.ExportRepository, tx repository.TxRunner, opts ...Option) *Pipeline {
	if tx == nil {
		tx = repository.NoTx{}
	}
	p := &Pipeline{
		channels: channels,
		projects: projects,
		exports:  exports,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is one finished export.
type Result struct {
	Record model.ExportRecord
	HTML   []byte
}

// Render produces the bundle for cfg on ch without recording anything.
func (p *Pipeline) Render(ctx context.Context, projectID string, cfg playable.Configuration, ch channel.Channel) ([]byte, error) {
	cfg = cfg.Clone()
	cfg.ChannelID = ch.ID
	cfg.Normalize()

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	animJSON, err := json.Marshal(playable.Animations())
	if err != nil {
		return nil, fmt.Errorf("encode animations: %w", err)
	}

	// The bundle opens on a fresh session, so render the first frame from one.
	now := p.now()
	ed := playable.NewEditor(projectID, cfg, playable.WithRand(playable.NewRand(0)))
	ed.TogglePreview(now)
	preview := views.BuildPreview(ed.Snapshot(now))

	var buf bytes.Buffer
	err = views.Bundle(viewmodel.Bundle{
		Title:          cfg.Name,
		ChannelID:      ch.ID,
		Width:          ch.Width,
		Height:         ch.Height,
		CTAAPI:         ch.CTAAPI,
		ConfigJSON:     string(cfgJSON),
		AnimationsJSON: string(animJSON),
		Preview:        preview,
	}).Render(ctx, &buf)
	if err != nil {
		return nil, fmt.Errorf("render bundle: %w", err)
	}
	return buf.Bytes(), nil
}

// Export renders cfg for channelID, enforces the channel size limit, then
// saves the project and the export record together. An empty channelID uses
// the configuration's own channel.
func (p *Pipeline) Export(ctx context.Context, projectID string, cfg playable.Configuration, channelID string) (*Result, error) {
	if strings.TrimSpace(channelID) == "" {
		channelID = cfg.ChannelID
	}
	ch, err := p.channels.Lookup(channelID)
	if err != nil {
		return nil, err
	}

	html, err := p.Render(ctx, projectID, cfg, ch)
	if err != nil {
		return nil, err
	}
	size := int64(len(html))
	if size > ch.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, %s allows %s", ErrBundleTooLarge, size, ch.Name, ch.MaxMB())
	}

	sum := blake2b.Sum256(html)
	now := p.now()
	rec := model.ExportRecord{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		ChannelID: ch.ID,
		FileName:  FileName(cfg.Name, ch.ID),
		SizeBytes: size,
		Checksum:  hex.EncodeToString(sum[:]),
		CreatedAt: now,
	}

	written, err := p.write(rec, html)
	if err != nil {
		return nil, err
	}

	err = p.tx.Do(ctx, func(ctx context.Context) error {
		project := &model.Project{ID: projectID, Config: cfg.Clone(), CreatedAt: now, UpdatedAt: now}
		if err := p.projects.SaveProject(ctx, project); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		if err := p.exports.CreateExport(ctx, &rec); err != nil {
			return fmt.Errorf("record export: %w", err)
		}
		return nil
	})
	if err != nil {
		if written != "" {
			_ = os.Remove(written)
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"project": projectID,
		"channel": ch.ID,
		"bytes":   size,
		"file":    rec.FileName,
	}).Info("bundle exported")
	return &Result{Record: rec, HTML: html}, nil
}

// History lists a project's exports, newest first.
func (p *Pipeline) History(ctx context.Context, projectID string) ([]model.ExportRecord, error) {
	return p.exports.ListExports(ctx, projectID)
}

// Channels returns the export targets.
func (p *Pipeline) Channels() []channel.Channel {
	return p.channels.All()
}

func (p *Pipeline) write(rec model.ExportRecord, html []byte) (string, error) {
	if p.dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(p.dir, rec.ID[:8]+"-"+rec.FileName)
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", fmt.Errorf("write bundle: %w", err)
	}
	return path, nil
}

// FileName builds the download name for a bundle, e.g. "summer-slots-meta.html".
func FileName(name, channelID string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "playable"
	}
	return slug + "-" + channelID + ".html"
}
