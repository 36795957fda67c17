package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwhiz/internal/problemgen"
	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/screens/game"
	"github.com/abhisek/mathwhiz/internal/screens/prefs"
	"github.com/abhisek/mathwhiz/internal/session"
	"github.com/abhisek/mathwhiz/internal/store"
)

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
)

func testDeps(t *testing.T) *screens.Deps {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemoryKV()
	if err := kv.Set(ctx, session.HighScoreKey(problemgen.TierMedium), "45"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(ctx, "difficulty", "Medium"); err != nil {
		t.Fatal(err)
	}
	return screens.NewDeps(ctx, kv, nil)
}

func TestHome_ShowsTierAndHighScore(t *testing.T) {
	h := New(testDeps(t))
	view := h.View(100, 30)

	for _, want := range []string{"Level: Medium", "High score: 45", "Play", "Settings", "Stats", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHome_PlayPushesGame(t *testing.T) {
	h := New(testDeps(t))

	_, cmd := h.Update(enter)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	g, ok := push.Screen.(*game.GameScreen)
	if !ok {
		t.Fatalf("expected game screen, got %T", push.Screen)
	}
	g.Close()
}

func TestHome_SettingsPushesPrefs(t *testing.T) {
	h := New(testDeps(t))

	h.Update(down)
	_, cmd := h.Update(enter)
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*prefs.PrefsScreen); !ok {
		t.Fatalf("expected settings screen, got %T", push.Screen)
	}
}

func TestHome_QuitQuits(t *testing.T) {
	h := New(testDeps(t))
	for i := 0; i < 3; i++ {
		h.Update(down)
	}
	_, cmd := h.Update(enter)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestHome_ResumeRefreshesHighScore(t *testing.T) {
	d := testDeps(t)
	h := New(d)

	if err := d.KV.Set(context.Background(), session.HighScoreKey(problemgen.TierHard), "99"); err != nil {
		t.Fatal(err)
	}
	d.Prefs.Tier = problemgen.TierHard
	h.Resume()

	if !strings.Contains(h.View(100, 30), "High score: 99") {
		t.Error("expected the Hard high score after resume")
	}
}
