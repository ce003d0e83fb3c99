package export

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/mbark223/playablelab-sub000/internal/channel"
	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/repository/memory"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type failingTx struct{}

func (failingTx) Do(context.Context, func(context.Context) error) error {
	return errors.New("tx aborted")
}

func newPipeline(t *testing.T, opts ...Option) (*Pipeline, *memory.Store) {
	t.Helper()
	store := memory.New()
	opts = append(opts, WithClock(func() time.Time { return fixedNow }))
	return NewPipeline(channel.Default(), store, store, nil, opts...), store
}

func TestExportRecordsBundle(t *testing.T) {
	p, store := newPipeline(t)
	cfg := playable.DefaultConfiguration(playable.ModeSlots)
	cfg.Name = "Summer Slots"

	res, err := p.Export(context.Background(), "p1", cfg, "dsp")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Record.FileName != "summer-slots-dsp.html" {
		t.Errorf("file name %q, want %q", res.Record.FileName, "summer-slots-dsp.html")
	}
	if res.Record.SizeBytes != int64(len(res.HTML)) {
		t.Errorf("size %d, want %d", res.Record.SizeBytes, len(res.HTML))
	}
	sum := blake2b.Sum256(res.HTML)
	if res.Record.Checksum != hex.EncodeToString(sum[:]) {
		t.Error("checksum does not match bundle")
	}
	if !strings.Contains(string(res.HTML), `"channelId":"dsp"`) {
		t.Error("bundle config should carry the export channel")
	}

	saved, err := store.GetProject(context.Background(), "p1")
	if err != nil {
		t.Fatalf("project not saved: %v", err)
	}
	if saved.Config.Name != "Summer Slots" {
		t.Errorf("saved name %q", saved.Config.Name)
	}
	history, err := p.History(context.Background(), "p1")
	if err != nil || len(history) != 1 {
		t.Fatalf("history %v, %v", history, err)
	}
	if history[0].ID != res.Record.ID {
		t.Errorf("history id %q, want %q", history[0].ID, res.Record.ID)
	}
}

func TestExportDefaultsToConfigChannel(t *testing.T) {
	p, _ := newPipeline(t)
	cfg := playable.DefaultConfiguration(playable.ModeWheel)
	cfg.ChannelID = "unity"
	res, err := p.Export(context.Background(), "p1", cfg, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.Record.ChannelID != "unity" {
		t.Errorf("channel %q, want unity", res.Record.ChannelID)
	}
}

func TestExportUnknownChannel(t *testing.T) {
	p, _ := newPipeline(t)
	_, err := p.Export(context.Background(), "p1", playable.DefaultConfiguration(playable.ModeSlots), "myspace")
	if !errors.Is(err, channel.ErrUnknownChannel) {
		t.Errorf("err %v, want ErrUnknownChannel", err)
	}
}

func TestExportTooLarge(t *testing.T) {
	catalog, err := channel.Parse([]byte("channels:\n  - id: tiny\n    name: Tiny\n    max_bytes: 1024\n    width: 320\n    height: 480\n"))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	store := memory.New()
	p := NewPipeline(catalog, store, store, nil)
	_, err = p.Export(context.Background(), "p1", playable.DefaultConfiguration(playable.ModeSlots), "tiny")
	if !errors.Is(err, ErrBundleTooLarge) {
		t.Fatalf("err %v, want ErrBundleTooLarge", err)
	}
	if _, err := store.GetProject(context.Background(), "p1"); err == nil {
		t.Error("oversized export should not save the project")
	}
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	p, _ := newPipeline(t, WithDir(dir))
	res, err := p.Export(context.Background(), "p1", playable.DefaultConfiguration(playable.ModeQuiz), "meta")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*-"+res.Record.FileName))
	if len(matches) != 1 {
		t.Fatalf("files %v, want one bundle", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(res.HTML) {
		t.Error("written bundle differs from result")
	}
}

func TestExportRemovesFileWhenTxFails(t *testing.T) {
	dir := t.TempDir()
	store := memory.New()
	p := NewPipeline(channel.Default(), store, store, failingTx{}, WithDir(dir))
	if _, err := p.Export(context.Background(), "p1", playable.DefaultConfiguration(playable.ModePick), "meta"); err == nil {
		t.Fatal("expected tx error")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("left %d files behind", len(entries))
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name, channel, want string
	}{
		{"Summer Slots", "meta", "summer-slots-meta.html"},
		{"  Big   WIN!!  ", "dsp", "big-win-dsp.html"},
		{"Ünïcode", "unity", "n-code-unity.html"},
		{"***", "applovin", "playable-applovin.html"},
	}
	for _, tt := range tests {
		if got := FileName(tt.name, tt.channel); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
