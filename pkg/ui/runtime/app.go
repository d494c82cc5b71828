package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/ui/backend"
	"github.com/odvcencio/wayfinder/pkg/ui/focus"
	"github.com/odvcencio/wayfinder/pkg/ui/terminal"
)

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           *Container
	Bindings       *Bindings
	Logger         *logging.Logger
	Observers      []NavigationObserver
	OnFocusChange  func(from, to focus.Element)
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
}

// App runs a widget tree against a terminal backend.
type App struct {
	cfg      AppConfig
	backend  backend.Backend
	update   UpdateFunc
	messages chan Message

	screenMu sync.RWMutex
	screen   *Screen

	running atomic.Bool
	dirty   bool
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	update := cfg.Update
	if update == nil {
		update = DefaultUpdate
	}
	return &App{
		cfg:      cfg,
		backend:  cfg.Backend,
		update:   update,
		messages: make(chan Message, bufferSize),
	}
}

// Screen returns the active screen, if initialized.
func (a *App) Screen() *Screen {
	a.screenMu.RLock()
	defer a.screenMu.RUnlock()
	return a.screen
}

// Post sends a message to the event loop. Messages are dropped when the
// queue is full.
func (a *App) Post(msg Message) {
	select {
	case a.messages <- msg:
	default:
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New("backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	a.setScreen(a.newScreen())
	a.cfg.Logger.Info(logging.CategoryApp, "start", "event loop started", nil)

	a.running.Store(true)
	a.dirty = true

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.cfg.TickRate > 0 {
		ticker := time.NewTicker(a.cfg.TickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running.Load() {
		if a.dirty {
			a.render()
			a.dirty = false
		}

		select {
		case <-ctx.Done():
			a.running.Store(false)
		case msg := <-a.messages:
			if a.update(a, msg) {
				a.dirty = true
			}
		case now := <-ticks:
			if a.update(a, TickMsg{Time: now}) {
				a.dirty = true
			}
		}
	}

	a.cfg.Logger.Info(logging.CategoryApp, "stop", "event loop stopped", nil)
	return ctx.Err()
}

// Stop ends the event loop after the current message.
func (a *App) Stop() {
	a.running.Store(false)
}

func (a *App) newScreen() *Screen {
	w, h := a.backend.Size()
	s := NewScreen(w, h)
	s.SetBindings(a.cfg.Bindings)
	s.SetLogger(a.cfg.Logger)
	s.OnFocusChange(a.cfg.OnFocusChange)
	for _, o := range a.cfg.Observers {
		s.AddObserver(o)
	}
	if a.cfg.Root != nil {
		s.SetRoot(a.cfg.Root)
	}
	return s
}

func (a *App) setScreen(s *Screen) {
	a.screenMu.Lock()
	defer a.screenMu.Unlock()
	a.screen = s
}

// DefaultUpdate handles input messages and widget commands.
func DefaultUpdate(app *App, msg Message) bool {
	screen := app.Screen()
	if screen == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		screen.Resize(m.Width, m.Height)
		return true
	case TickMsg:
		return screen.Focus() != nil && screen.Focus().Revalidate()
	default:
		result := screen.HandleMessage(msg)
		dirty := result.Handled
		for _, cmd := range result.Commands {
			if app.handleCommand(cmd) {
				dirty = true
			}
		}
		return dirty
	}
}

func (a *App) handleCommand(cmd Command) bool {
	switch cmd.(type) {
	case Quit:
		a.Stop()
		return false
	case Refresh:
		if s := a.Screen(); s != nil {
			s.Buffer().MarkAllDirty()
		}
		return true
	default:
		if a.cfg.CommandHandler != nil {
			return a.cfg.CommandHandler(cmd)
		}
		return false
	}
}

func (a *App) pollEvents() {
	for a.running.Load() {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}

		switch e := ev.(type) {
		case terminal.KeyEvent:
			a.Post(KeyMsg{
				Key:   e.Key,
				Rune:  e.Rune,
				Alt:   e.Alt,
				Ctrl:  e.Ctrl,
				Shift: e.Shift,
			})
		case terminal.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		}
	}
}

func (a *App) render() {
	screen := a.Screen()
	if screen == nil {
		return
	}

	screen.Render()
	buf := screen.Buffer()
	buf.ForEachDirtyCell(func(x, y int, cell Cell) {
		if cell.Rune == 0 {
			return
		}
		a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
	})
	buf.ClearDirty()
	a.backend.Show()
}
