// Package i18n holds the UI copy for every supported locale and formats
// values that read differently per language.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/dori/taskdeck/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	SplashTitle   = "splash.title"
	HomeTitle     = "home.title"
	HomeLoading   = "home.loading"
	HomeEmpty     = "home.empty"
	TaskCreate    = "task.create"
	TaskRemove    = "task.remove"
	TaskSubmit    = "task.submit"
	TaskCreated   = "task.created"
	TaskLow       = "task.priority.low"
	TaskMedium    = "task.priority.medium"
	TaskHigh      = "task.priority.high"
	RemainingNone = "remaining.none"
	RemainingLate = "remaining.overdue"
	RemainingDays = "remaining.days"
	RemainingHrs  = "remaining.hours"
	RemainingMins = "remaining.minutes"
	DateLayout    = "date.layout"
	ErrFetch      = "error.fetch"
	ErrSave       = "error.save"
	ErrDelete     = "error.delete"
	HelpCreate    = "help.create"
	HelpExpand    = "help.expand"
	HelpCollapse  = "help.collapse"
	HelpCheck     = "help.check"
	HelpRemove    = "help.remove"
	HelpNavigate  = "help.navigate"
	HelpQuit      = "help.quit"
	HelpToggle    = "help.toggle"
	HelpTheme     = "help.theme"
	StatusTheme   = "status.theme"
)

var (
	// English is the base locale; every key must exist in it
	English = language.AmericanEnglish
	// Spanish is the es-ES locale
	Spanish = language.MustParse("es-ES")

	// Supported lists the locales with a catalog, base locale first
	Supported = []language.Tag{English, Spanish}

	matcher = language.NewMatcher(Supported)
	builder = mustBuildCatalog()
)

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for tag, messages := range map[language.Tag]map[string]string{
		English: messagesEN,
		Spanish: messagesES,
	} {
		for key, msg := range messages {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: register %s %q: %v", tag, key, err))
			}
		}
	}
	return b
}

// Match returns the supported locale closest to locale, English when
// nothing matches or locale does not parse.
func Match(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	return Supported[idx]
}

// Translator renders UI copy in one locale
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for the supported locale closest to locale
func New(locale string) *Translator {
	tag := Match(locale)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

// Locale returns the BCP 47 tag in use
func (t *Translator) Locale() string {
	return t.tag.String()
}

// T returns the message for key formatted with args. Unknown keys come
// back as the key itself.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Priority returns the display label for p
func (t *Translator) Priority(p model.Priority) string {
	switch p.Normalize() {
	case model.PriorityHigh:
		return t.T(TaskHigh)
	case model.PriorityLow:
		return t.T(TaskLow)
	default:
		return t.T(TaskMedium)
	}
}

// Remaining renders the time left until a deadline
func (t *Translator) Remaining(r model.Remaining) string {
	switch r.Kind {
	case model.RemainingOverdue:
		return t.T(RemainingLate)
	case model.RemainingDays:
		return t.T(RemainingDays, r.Days, r.Hours)
	case model.RemainingHours:
		return t.T(RemainingHrs, r.Hours)
	case model.RemainingMinutes:
		return t.T(RemainingMins, r.Minutes)
	default:
		return t.T(RemainingNone)
	}
}

// Date renders a calendar date in the locale's short form
func (t *Translator) Date(ts time.Time) string {
	return ts.Format(t.T(DateLayout))
}
