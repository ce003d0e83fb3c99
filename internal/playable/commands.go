package playable

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownCommand is returned for a nil command or an unrecognised type name.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one editor mutation. Commands are applied through
// Editor.Dispatch, which normalizes the configuration afterwards.
type Command interface {
	apply(c *Configuration)
}

type SetName struct {
	Name string `json:"name"`
}

func (cmd SetName) apply(c *Configuration) { c.Name = strings.TrimSpace(cmd.Name) }

// SetMode switches the mechanic. Unknown modes are ignored.
type SetMode struct {
	Mode Mode `json:"mode"`
}

func (cmd SetMode) apply(c *Configuration) {
	if m, ok := ParseMode(string(cmd.Mode)); ok {
		c.Mode = m
	}
}

type SetChannel struct {
	ChannelID string `json:"channelId"`
}

func (cmd SetChannel) apply(c *Configuration) { c.ChannelID = strings.TrimSpace(cmd.ChannelID) }

// SetGrid resizes the board. Out-of-range values are clamped; overrides
// outside the new bounds are kept.
type SetGrid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (cmd SetGrid) apply(c *Configuration) {
	c.Grid = Grid{Rows: cmd.Rows, Cols: cmd.Cols}
}

type SetSymbols struct {
	Symbols []string `json:"symbols"`
}

func (cmd SetSymbols) apply(c *Configuration) {
	c.SymbolSet = append([]string(nil), cmd.Symbols...)
}

// SetCellOverride pins Symbol to one cell. An empty symbol clears the pin.
type SetCellOverride struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Symbol string `json:"symbol"`
}

func (cmd SetCellOverride) apply(c *Configuration) {
	if cmd.Row < 0 || cmd.Col < 0 || cmd.Row >= MaxRows || cmd.Col >= MaxCols {
		return
	}
	sym := strings.TrimSpace(cmd.Symbol)
	if sym == "" {
		ClearCellOverride{Row: cmd.Row, Col: cmd.Col}.apply(c)
		return
	}
	for i := range c.CellOverrides {
		if c.CellOverrides[i].Row == cmd.Row && c.CellOverrides[i].Col == cmd.Col {
			c.CellOverrides[i].Symbol = sym
			return
		}
	}
	c.CellOverrides = append(c.CellOverrides, CellOverride{Row: cmd.Row, Col: cmd.Col, Symbol: sym})
}

type ClearCellOverride struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (cmd ClearCellOverride) apply(c *Configuration) {
	kept := c.CellOverrides[:0]
	for _, o := range c.CellOverrides {
		if o.Row != cmd.Row || o.Col != cmd.Col {
			kept = append(kept, o)
		}
	}
	c.CellOverrides = kept
}

type SetJackpotTiers struct {
	Tiers []JackpotTier `json:"tiers"`
}

func (cmd SetJackpotTiers) apply(c *Configuration) {
	c.JackpotTiers = append([]JackpotTier(nil), cmd.Tiers...)
}

// SetJackpotTierCount grows or shrinks the tier list, keeping existing
// tiers and filling new ones with defaults.
type SetJackpotTierCount struct {
	Count int `json:"count"`
}

func (cmd SetJackpotTierCount) apply(c *Configuration) {
	n := clampInt(cmd.Count, MinJackpotTiers, MaxJackpotTiers)
	if n <= len(c.JackpotTiers) {
		c.JackpotTiers = c.JackpotTiers[:n]
		return
	}
	defaults := defaultJackpotTiers()
	for i := len(c.JackpotTiers); i < n; i++ {
		tier := JackpotTier{Label: fmt.Sprintf("TIER %d", i+1), DisplayValue: "$10"}
		if i < len(defaults) {
			tier = defaults[i]
		}
		c.JackpotTiers = append(c.JackpotTiers, tier)
	}
}

// SetWinConfig edits the win message and animation for one play index.
type SetWinConfig struct {
	Index       int    `json:"index"`
	Message     string `json:"message"`
	AnimationID string `json:"animationId"`
}

func (cmd SetWinConfig) apply(c *Configuration) {
	if cmd.Index < 0 || cmd.Index >= MaxPlays {
		return
	}
	for i := len(c.WinConfigs); i <= cmd.Index; i++ {
		c.WinConfigs = append(c.WinConfigs, defaultWinConfig(i))
	}
	wc := &c.WinConfigs[cmd.Index]
	wc.Message = cmd.Message
	if cmd.AnimationID != "" {
		wc.AnimationID = cmd.AnimationID
	}
}

type SetPlaysAllowed struct {
	Plays int `json:"plays"`
}

func (cmd SetPlaysAllowed) apply(c *Configuration) { c.PlaysAllowed = cmd.Plays }

type SetQuizQuestions struct {
	Questions []QuizQuestion `json:"questions"`
}

func (cmd SetQuizQuestions) apply(c *Configuration) {
	c.QuizQuestions = make([]QuizQuestion, len(cmd.Questions))
	for i, q := range cmd.Questions {
		q.Options = append([]string(nil), q.Options...)
		c.QuizQuestions[i] = q
	}
}

// SetAssets replaces the background and logo references. Nil leaves a field
// untouched; an empty string clears it.
type SetAssets struct {
	Background *string `json:"background,omitempty"`
	Logo       *string `json:"logo,omitempty"`
}

func (cmd SetAssets) apply(c *Configuration) {
	if cmd.Background != nil {
		c.Background = strings.TrimSpace(*cmd.Background)
	}
	if cmd.Logo != nil {
		c.Logo = strings.TrimSpace(*cmd.Logo)
	}
}

type SetSounds struct {
	Sounds Sounds `json:"sounds"`
}

func (cmd SetSounds) apply(c *Configuration) { c.Sounds = cmd.Sounds }

type SetEndCard struct {
	EndCard EndCard `json:"endCard"`
}

func (cmd SetEndCard) apply(c *Configuration) { c.EndCard = cmd.EndCard }

type SetStyle struct {
	Style Style `json:"style"`
}

func (cmd SetStyle) apply(c *Configuration) { c.Style = cmd.Style }

// ReplaceConfig swaps in a whole configuration, e.g. after a YAML import.
type ReplaceConfig struct {
	Config Configuration `json:"config"`
}

func (cmd ReplaceConfig) apply(c *Configuration) { *c = cmd.Config.Clone() }

type commandEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

var commandDecoders = map[string]func(json.RawMessage) (Command, error){
	"set_name":               decodeCommand[SetName],
	"set_mode":               decodeCommand[SetMode],
	"set_channel":            decodeCommand[SetChannel],
	"set_grid":               decodeCommand[SetGrid],
	"set_symbols":            decodeCommand[SetSymbols],
	"set_cell_override":      decodeCommand[SetCellOverride],
	"clear_cell_override":    decodeCommand[ClearCellOverride],
	"set_jackpot_tiers":      decodeCommand[SetJackpotTiers],
	"set_jackpot_tier_count": decodeCommand[SetJackpotTierCount],
	"set_win_config":         decodeCommand[SetWinConfig],
	"set_plays_allowed":      decodeCommand[SetPlaysAllowed],
	"set_quiz_questions":     decodeCommand[SetQuizQuestions],
	"set_assets":             decodeCommand[SetAssets],
	"set_sounds":             decodeCommand[SetSounds],
	"set_end_card":           decodeCommand[SetEndCard],
	"set_style":              decodeCommand[SetStyle],
	"replace_config":         decodeCommand[ReplaceConfig],
}

func decodeCommand[T Command](raw json.RawMessage) (Command, error) {
	var cmd T
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
	}
	return cmd, nil
}

// DecodeCommand parses a {"type": ..., "payload": {...}} envelope.
func DecodeCommand(data []byte) (Command, error) {
	var env commandEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	decode, ok := commandDecoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, env.Type)
	}
	cmd, err := decode(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", env.Type, err)
	}
	return cmd, nil
}

// CommandTypes lists the accepted envelope type names.
func CommandTypes() []string {
	out := make([]string, 0, len(commandDecoders))
	for name := range commandDecoders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
