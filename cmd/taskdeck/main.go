package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/taskdeck/internal/app"
	"github.com/dori/taskdeck/internal/config"
	"github.com/dori/taskdeck/internal/i18n"
	"github.com/dori/taskdeck/internal/model"
	"github.com/dori/taskdeck/internal/ui"
	"github.com/dori/taskdeck/internal/ui/theme"
)

var (
	version = "0.1.0"
)

// cliTimeout bounds each store operation a subcommand waits on
const cliTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Subcommand handling
	if len(args) > 0 {
		switch args[0] {
		case "add":
			return withApp(func(a *app.App) error { return handleAdd(a, os.Stdout, args[1:]) })
		case "list", "ls":
			return withApp(func(a *app.App) error { return handleList(a, os.Stdout) })
		case "rename":
			return withApp(func(a *app.App) error { return handleRename(a, os.Stdout, args[1:]) })
		case "rm", "remove":
			return withApp(func(a *app.App) error { return handleRemove(a, os.Stdout, args[1:]) })
		case "version":
			fmt.Printf("taskdeck v%s\n", version)
			return nil
		case "help", "-h", "--help":
			printHelp()
			return nil
		}
	}

	// Parse flags for TUI mode
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	themeFlag := fs.String("theme", "", "Theme name ("+strings.Join(theme.Names(), ", ")+")")
	localeFlag := fs.String("locale", "", "UI language (en-US, es-ES)")
	noSplash := fs.Bool("no-splash", false, "Skip the splash screen")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	opts := ui.Options{Theme: *themeFlag, Locale: *localeFlag}
	if *noSplash {
		var zero time.Duration
		opts.SplashDuration = &zero
	}
	return runTUI(opts)
}

func printHelp() {
	help := `taskdeck - a small task list for the terminal

Usage:
  taskdeck                      Start the TUI
  taskdeck add <task>           Quick add a task
  taskdeck list                 List tasks
  taskdeck rename <id> <name>   Rename a task
  taskdeck rm <id>              Remove a task
  taskdeck version              Show version
  taskdeck help                 Show this help

Quick Add Syntax:
  taskdeck add "Buy groceries"
  taskdeck add "Review PR !high due:tomorrow"

  Priority:  !low !medium !high
  Deadline:  due:tomorrow due:friday due:2024-01-15 due:3d due:12h due:none
             (default: two days from now)

TUI Options:
  --theme <name>    Theme (nord, dracula)
  --locale <tag>    Language (en-US, es-ES)
  --no-splash       Skip the splash screen

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
  Actions:      a             Create task
                enter         Expand card / submit rename
                esc           Collapse card
                space         Toggle checkbox
                ctrl+d        Remove (expanded card)
  General:      ctrl+t        Cycle theme
                ?             Help
                q             Quit

Environment:
  TASKDECK_DATA_DIR, TASKDECK_STORAGE (sqlite, bolt), TASKDECK_LOG_LEVEL,
  TASKDECK_LOG_FILE, TASKDECK_LOCALE, TASKDECK_THEME, TASKDECK_SPLASH_DURATION,
  TASKDECK_HAPTICS, TASKDECK_DESKTOP_NOTIFY`

	fmt.Println(help)
}

// withApp loads config, opens the app and closes it after fn
func withApp(fn func(*app.App) error) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, application.Close())
	}()
	return fn(application)
}

// loadTasks fetches the persisted collection into the store
func loadTasks(ctx context.Context, a *app.App) ([]model.Task, error) {
	return a.Store.FetchTasks(ctx).Wait(ctx)
}

func handleAdd(a *app.App, w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New(`usage: taskdeck add <task>, e.g. taskdeck add "Buy groceries !high due:tomorrow"`)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	if _, err := loadTasks(ctx, a); err != nil {
		return err
	}

	task := parseQuickAdd(strings.Join(args, " "), time.Now())
	tasks, err := a.Store.CreateTask(ctx, task).Wait(ctx)
	if err != nil {
		return err
	}
	created := tasks[len(tasks)-1]

	tr := i18n.New(a.Config.Locale)
	fmt.Fprintf(w, "Created: %s (%s)\n", created.Name, created.ID)
	fmt.Fprintf(w, "Priority: %s\n", tr.Priority(created.Priority))
	fmt.Fprintf(w, "Remaining: %s\n", tr.Remaining(created.Remaining(time.Now())))
	return nil
}

func handleList(a *app.App, w io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	tasks, err := loadTasks(ctx, a)
	if err != nil {
		return err
	}

	tr := i18n.New(a.Config.Locale)
	if len(tasks) == 0 {
		fmt.Fprintln(w, tr.T(i18n.HomeEmpty))
		return nil
	}

	now := time.Now()
	for _, t := range tasks {
		fmt.Fprintf(w, "%-14s %-8s %-32s %s\n",
			t.ID, tr.Priority(t.Priority), t.Name, tr.Remaining(t.Remaining(now)))
	}
	return nil
}

func handleRename(a *app.App, w io.Writer, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: taskdeck rename <id> <name>")
	}
	id := args[0]
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return errors.New("name must not be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	if _, err := loadTasks(ctx, a); err != nil {
		return err
	}
	task, ok := a.Store.Find(id)
	if !ok {
		return fmt.Errorf("no task with id %q", id)
	}

	task.Name = name
	if _, err := a.Store.SaveTask(ctx, task).Wait(ctx); err != nil {
		return err
	}
	fmt.Fprintf(w, "Renamed: %s\n", name)
	return nil
}

func handleRemove(a *app.App, w io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: taskdeck rm <id>")
	}
	id := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	if _, err := loadTasks(ctx, a); err != nil {
		return err
	}
	task, ok := a.Store.Find(id)
	if !ok {
		return fmt.Errorf("no task with id %q", id)
	}

	if _, err := a.Store.DeleteTask(ctx, id).Wait(ctx); err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed: %s\n", task.Name)
	return nil
}

func runTUI(opts ui.Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Create application
	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	// Create root model
	root := ui.NewRootModel(application, opts)

	// Create and run program
	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err = p.Run()
	return err
}
