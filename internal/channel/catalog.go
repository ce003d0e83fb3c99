// Package channel describes the ad networks a playable can be exported for.
package channel

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownChannel is returned by Lookup for an ID not in the catalog.
var ErrUnknownChannel = errors.New("unknown channel")

//go:embed channels.yaml
var defaultCatalog []byte

// Channel is one delivery target and its limits.
type Channel struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	MaxBytes int64  `yaml:"max_bytes" json:"maxBytes"`
	Width    int    `yaml:"width" json:"width"`
	Height   int    `yaml:"height" json:"height"`
	// CTAAPI is the network's click-through call, empty for a plain link.
	CTAAPI string `yaml:"cta_api,omitempty" json:"ctaApi,omitempty"`
}

// MaxMB formats the size limit for display.
func (c Channel) MaxMB() string {
	return fmt.Sprintf("%.0f MB", float64(c.MaxBytes)/(1<<20))
}

type Catalog struct {
	channels []Channel
}

// Parse reads a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Channels []Channel `yaml:"channels"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse channel catalog: %w", err)
	}
	seen := make(map[string]bool, len(doc.Channels))
	for i, ch := range doc.Channels {
		id := strings.ToLower(strings.TrimSpace(ch.ID))
		if id == "" {
			return nil, fmt.Errorf("channel %d: missing id", i)
		}
		if seen[id] {
			return nil, fmt.Errorf("channel %q listed twice", id)
		}
		if ch.MaxBytes <= 0 {
			return nil, fmt.Errorf("channel %q: max_bytes must be positive", id)
		}
		seen[id] = true
		doc.Channels[i].ID = id
	}
	return &Catalog{channels: doc.Channels}, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(id string) (Channel, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, ch := range c.channels {
		if ch.ID == id {
			return ch, nil
		}
	}
	return Channel{}, fmt.Errorf("%w: %q", ErrUnknownChannel, id)
}

func (c *Catalog) All() []Channel {
	return append([]Channel(nil), c.channels...)
}
