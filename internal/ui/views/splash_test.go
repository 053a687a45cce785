package views

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/taskdeck/internal/i18n"
)

func TestSplashZeroDurationSkips(t *testing.T) {
	v := NewSplashView(i18n.New("en-US"), 0)
	if _, ok := v.Init()().(SplashDoneMsg); !ok {
		t.Fatal("zero duration should finish immediately")
	}
}

func TestSplashTimeout(t *testing.T) {
	v := NewSplashView(i18n.New("en-US"), 10*time.Millisecond)
	msg := v.Init()()
	if _, ok := msg.(splashTimeoutMsg); !ok {
		t.Fatalf("expected timeout msg, got %T", msg)
	}
	_, cmd := v.Update(msg)
	if _, ok := cmd().(SplashDoneMsg); !ok {
		t.Fatal("timeout should finish the splash")
	}
}

func TestSplashKeySkips(t *testing.T) {
	v := NewSplashView(i18n.New("en-US"), time.Hour)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("expected a cmd")
	}
	if _, ok := cmd().(SplashDoneMsg); !ok {
		t.Fatal("key should skip the splash")
	}
}

func TestSplashView(t *testing.T) {
	v := NewSplashView(i18n.New("es-ES"), time.Second).SetSize(40, 10)
	out := v.View()
	if !strings.Contains(out, "Taskdeck") {
		t.Fatalf("splash missing title:\n%s", out)
	}
	if lines := strings.Count(out, "\n") + 1; lines != 10 {
		t.Errorf("splash should fill the screen, got %d lines", lines)
	}
}
