package i18n

import (
	"testing"
	"time"

	"github.com/dori/taskdeck/internal/model"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "en-US"},
		{"es-ES", "es-ES"},
		{"es", "es-ES"},
		{"es-MX", "es-ES"},
		{"", "en-US"},
		{"not a locale!", "en-US"},
	}
	for _, tt := range tests {
		if got := Match(tt.locale).String(); got != tt.want {
			t.Errorf("Match(%q) = %s, want %s", tt.locale, got, tt.want)
		}
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range messagesEN {
		if _, ok := messagesES[key]; !ok {
			t.Errorf("es-ES missing %q", key)
		}
	}
	for key := range messagesES {
		if _, ok := messagesEN[key]; !ok {
			t.Errorf("es-ES has extra key %q", key)
		}
	}
}

func TestEnglishRemainingMatchesModel(t *testing.T) {
	tr := New("en-US")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	deadline := func(d time.Duration) *int64 {
		ms := now.Add(d).UnixMilli()
		return &ms
	}

	for _, dl := range []*int64{nil, deadline(-time.Minute), deadline(50 * time.Hour), deadline(5 * time.Hour), deadline(42 * time.Minute)} {
		r := model.RemainingAt(dl, now)
		if got, want := tr.Remaining(r), r.String(); got != want {
			t.Errorf("Remaining(%+v) = %q, want %q", r, got, want)
		}
	}
}

func TestSpanish(t *testing.T) {
	tr := New("es-ES")
	if got := tr.T(HomeTitle); got != "Tareas" {
		t.Errorf("HomeTitle = %q", got)
	}
	if got := tr.Remaining(model.Remaining{Kind: model.RemainingHours, Hours: 3}); got != "Quedan 3h" {
		t.Errorf("remaining = %q", got)
	}
	if got := tr.Priority(model.PriorityHigh); got != "Alta" {
		t.Errorf("priority = %q", got)
	}
	if got := tr.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)); got != "01/05/2024" {
		t.Errorf("date = %q", got)
	}
}

func TestEnglishFormatting(t *testing.T) {
	tr := New("en-US")
	if got := tr.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)); got != "Wed May 01 2024" {
		t.Errorf("date = %q", got)
	}
	if got := tr.T(TaskCreated, "today"); got != "Created today" {
		t.Errorf("created = %q", got)
	}
	if got := tr.Priority(model.Priority("bogus")); got != "Medium" {
		t.Errorf("unknown priority label = %q", got)
	}
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Errorf("unknown key = %q", got)
	}
}
