package playable

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeCommand(t *testing.T) {
	cmd, err := DecodeCommand([]byte(`{"type":"set_grid","payload":{"rows":4,"cols":5}}`))
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	grid, ok := cmd.(SetGrid)
	if !ok {
		t.Fatalf("got %T, want SetGrid", cmd)
	}
	if grid.Rows != 4 || grid.Cols != 5 {
		t.Errorf("SetGrid %+v, want 4x5", grid)
	}

	_, err = DecodeCommand([]byte(`{"type":"launch_rockets"}`))
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unknown type error %v, want ErrUnknownCommand", err)
	}
	if _, err := DecodeCommand([]byte(`{"type":"set_grid","payload":{"rows":"x"}}`)); err == nil {
		t.Error("bad payload should fail")
	}
	if _, err := DecodeCommand([]byte(`not json`)); err == nil {
		t.Error("bad envelope should fail")
	}
}

func TestDispatch_CommandsThroughEditor(t *testing.T) {
	now := time.Now().UTC()
	rec := &recorder{}
	e := NewEditor("p1", DefaultConfiguration(ModeSlots), WithEventSink(rec.sink))

	bg := "https://cdn.example/bg.png"
	cmds := []Command{
		SetName{Name: "  Spring Promo "},
		SetMode{Mode: ModeWheel},
		SetMode{Mode: "nonsense"},
		SetJackpotTierCount{Count: 5},
		SetWinConfig{Index: 1, Message: "HUGE", AnimationID: "lightning"},
		SetAssets{Background: &bg},
		SetPlaysAllowed{Plays: 50},
	}
	for _, cmd := range cmds {
		if err := e.Dispatch(now, cmd); err != nil {
			t.Fatalf("Dispatch(%T): %v", cmd, err)
		}
	}
	cfg := e.Config()
	if cfg.Name != "Spring Promo" {
		t.Errorf("Name %q, want Spring Promo", cfg.Name)
	}
	if cfg.Mode != ModeWheel {
		t.Errorf("Mode %q, want wheel", cfg.Mode)
	}
	if len(cfg.JackpotTiers) != 5 || cfg.JackpotTiers[0].Label != "GRAND" {
		t.Errorf("JackpotTiers %+v, want 5 keeping GRAND first", cfg.JackpotTiers)
	}
	if wc := cfg.WinConfigFor(1); wc.Message != "HUGE" || wc.AnimationID != "lightning" {
		t.Errorf("WinConfigFor(1) %+v", wc)
	}
	if cfg.Background != bg {
		t.Errorf("Background %q, want %q", cfg.Background, bg)
	}
	if cfg.PlaysAllowed != MaxPlays {
		t.Errorf("PlaysAllowed %d, want %d", cfg.PlaysAllowed, MaxPlays)
	}
	if got := rec.count(EventConfigChanged); got != len(cmds) {
		t.Errorf("config_changed %d, want %d", got, len(cmds))
	}

	if err := e.Dispatch(now, SetJackpotTierCount{Count: 0}); err != nil {
		t.Fatal(err)
	}
	if n := len(e.Config().JackpotTiers); n != MinJackpotTiers {
		t.Errorf("len(JackpotTiers) %d, want %d", n, MinJackpotTiers)
	}
}

func TestCommandTypes_Sorted(t *testing.T) {
	names := CommandTypes()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("CommandTypes not sorted: %v", names)
		}
	}
	for _, name := range names {
		if _, err := DecodeCommand([]byte(`{"type":"` + name + `"}`)); err != nil {
			t.Errorf("DecodeCommand(%s) with no payload: %v", name, err)
		}
	}
}
