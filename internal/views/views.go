// Package views renders the editor pages, the live preview fragment and the
// exported bundle as templ components. Run `templ generate` after editing a
// .templ file.
package views

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/mbark223/playablelab-sub000/internal/viewmodel"
)

func projectHref(id, suffix string) string {
	return "/projects/" + url.PathEscape(id) + suffix
}

func ctaHref(target string) templ.SafeURL {
	if target == "" {
		return "#"
	}
	return templ.URL(target)
}

func toggleLabel(playing bool) string {
	if playing {
		return "Stop preview"
	}
	return "Play preview"
}

func playLabel(p viewmodel.Preview) string {
	if len(p.Wheel) > 0 {
		return "SPIN THE WHEEL"
	}
	return "SPIN"
}

// selectOption returns a copy of opts with only value selected.
func selectOption(opts []viewmodel.Option, value string) []viewmodel.Option {
	out := make([]viewmodel.Option, len(opts))
	for i, o := range opts {
		o.Selected = o.Value == value
		out[i] = o
	}
	return out
}

func adSize(width, height int) string {
	return fmt.Sprintf("width=%d,height=%d", width, height)
}

// configData passes pre-encoded JSON through to the bundle script untouched.
func configData(s string) json.RawMessage {
	if strings.TrimSpace(s) == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}

var cssUnsafe = strings.NewReplacer(`"`, "", `'`, "", "(", "", ")", "", `\`, "", ";", "", " ", "", "\n", "", "\t", "")

func stageStyle(p viewmodel.Preview) templ.SafeCSS {
	css := fmt.Sprintf("font-size: %dpx;", p.FontSize)
	if p.Background != "" {
		css += " background-image: url(" + cssUnsafe.Replace(p.Background) + ");"
	}
	return templ.SafeCSS(css)
}

func boardStyle(scale float64) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("transform: scale(%g);", scale))
}

func wheelStyle(rotation float64) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("transform: rotate(%gdeg);", rotation))
}

var colorUnsafe = strings.NewReplacer(`"`, "", `'`, "", `\`, "", ";", "", ":", "", "{", "", "}", "", "<", "", ">", "")

func segmentStyle(seg viewmodel.Segment) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("transform: rotate(%gdeg); background: %s;", seg.Angle, colorUnsafe.Replace(seg.Color)))
}

func surfaceStyle(cols int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("grid-template-columns: repeat(%d, 1fr);", cols))
}

func bundleStyle(width int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("max-width: %dpx;", width))
}
