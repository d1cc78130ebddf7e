package ui

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/csams/report-tui/internal/config"
	"github.com/csams/report-tui/internal/models"
)

type App struct {
	screen        tcell.Screen
	quit          chan struct{}
	mode          Mode
	view          *ReportView
	helpDialog    *HelpDialog
	confirmDialog *ConfirmationDialog
	config        *config.Config
	logger        zerolog.Logger
	statusMessage string
	shutdownOnce  sync.Once
	quitOnce      sync.Once

	// Replaced in tests
	openURL  func(url string) error
	copyText func(text string) error
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

type View interface {
	Draw(s tcell.Screen)
	HandleKey(ev *tcell.EventKey) bool
}

// NewApp builds the viewer for a report set. initialAgent selects the
// first report shown when it names a successful agent.
func NewApp(cfg *config.Config, set *models.ReportSet, initialAgent string, logger zerolog.Logger) *App {
	app := &App{
		quit:          make(chan struct{}),
		mode:          ModeNormal,
		view:          NewReportView(),
		helpDialog:    NewHelpDialog(),
		confirmDialog: NewConfirmationDialog(),
		config:        cfg,
		logger:        logger,
		copyText:      clipboard.WriteAll,
	}
	app.openURL = app.launchBrowser
	app.view.GetSearchState().SetMinScore(cfg.SearchMinScore)
	app.view.SetReports(set, initialAgent)
	return app
}

// Run takes over the terminal until the user quits
func (a *App) Run() error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	return a.RunOnScreen(s)
}

// RunOnScreen runs the event loop on an uninitialized screen
func (a *App) RunOnScreen(s tcell.Screen) error {
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	a.screen = s

	defer func() {
		a.shutdown()
		s.Fini()
	}()

	s.SetStyle(tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg))
	s.Clear()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			a.logger.Info().Msg("received interrupt signal, shutting down")
			a.Quit()
		case <-a.quit:
		}
	}()

	if r := a.view.Current(); r != nil {
		a.logger.Info().Str("agent_id", r.AgentID).Int("agents", len(a.view.Reports())).Msg("viewer started")
	} else {
		a.logger.Warn().Msg("viewer started without successful reports")
	}

	go a.handleEvents()
	a.draw()

	<-a.quit
	return nil
}

// Quit stops the event loop
func (a *App) Quit() {
	a.quitOnce.Do(func() {
		close(a.quit)
		if a.screen != nil {
			a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	})
}

func (a *App) shutdown() {
	a.shutdownOnce.Do(func() {
		a.logger.Info().Msg("shutdown complete")
	})
}

func (a *App) handleEvents() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
			a.draw()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				a.draw()
			}
		case *tcell.EventInterrupt:
			return
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	// Help dialog takes precedence over all other input
	if a.helpDialog.IsVisible() {
		return a.helpDialog.HandleKey(ev)
	}

	if a.confirmDialog.IsVisible() {
		return a.confirmDialog.HandleKey(ev)
	}

	if a.mode == ModeSearch {
		return a.handleSearchKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.Quit()
		return false
	case tcell.KeyEscape:
		a.view.ClearSelection()
		a.statusMessage = ""
		return true
	case tcell.KeyEnter:
		a.openSelectedLink()
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.Quit()
			return false
		case '?':
			a.helpDialog.Show()
			return true
		case '/':
			a.mode = ModeSearch
			a.view.GetSearchState().Clear()
			a.statusMessage = ""
			return true
		case 'y':
			a.copySelection()
			return true
		}
	}

	before := a.view.Current()
	handled := a.view.HandleKey(ev)
	if after := a.view.Current(); handled && after != before && after != nil {
		a.logger.Debug().Str("agent_id", after.AgentID).Msg("selected agent")
		a.statusMessage = ""
	}
	return handled
}

func (a *App) handleSearchKey(ev *tcell.EventKey) bool {
	search := a.view.GetSearchState()
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
		a.view.ClearSelection()
	case tcell.KeyEnter:
		a.mode = ModeNormal
		n := a.view.ApplySearch()
		switch {
		case search.Query() == "":
			a.statusMessage = ""
		case n == 0:
			a.statusMessage = "No matches for " + search.Query()
		default:
			a.statusMessage = fmt.Sprintf("%d matching lines", n)
		}
		a.logger.Debug().Str("query", search.Query()).Int("matches", n).Msg("search")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		search.DeleteChar()
	case tcell.KeyDelete:
		search.DeleteCharForward()
	case tcell.KeyLeft:
		search.MoveCursorLeft()
	case tcell.KeyRight:
		search.MoveCursorRight()
	case tcell.KeyCtrlA:
		search.MoveCursorStart()
	case tcell.KeyCtrlE:
		search.MoveCursorEnd()
	case tcell.KeyCtrlK:
		search.DeleteToEnd()
	case tcell.KeyCtrlW:
		search.DeleteWord()
	case tcell.KeyRune:
		search.InsertChar(ev.Rune())
	default:
		return false
	}
	return true
}

func (a *App) openSelectedLink() {
	url := a.view.SelectedLink()
	if url == "" {
		a.statusMessage = "No link selected (Tab to select)"
		return
	}

	open := func() {
		if err := a.openURL(url); err != nil {
			a.logger.Error().Err(err).Str("url", url).Msg("failed to open link")
			a.statusMessage = "Failed to open link: " + err.Error()
			return
		}
		a.logger.Info().Str("url", url).Msg("opened link")
		a.statusMessage = "Opened " + url
	}

	if !a.config.ConfirmOpen {
		open()
		return
	}
	a.confirmDialog.Show("Open link?", url, open, func() {
		a.statusMessage = ""
	})
}

// copySelection copies the focused link, or the plain report text when no
// link is focused.
func (a *App) copySelection() {
	text, what := a.view.SelectedLink(), "link"
	if text == "" {
		text, what = a.view.PlainText(), "report text"
	}
	if text == "" {
		a.statusMessage = "Nothing to copy"
		return
	}
	if err := a.copyText(text); err != nil {
		a.logger.Error().Err(err).Msg("failed to copy to clipboard")
		a.statusMessage = "Failed to copy: " + err.Error()
		return
	}
	a.statusMessage = "Copied " + what
}

func (a *App) launchBrowser(url string) error {
	if len(a.config.BrowserCommand) == 0 {
		return fmt.Errorf("no browser command configured")
	}
	args := append(append([]string(nil), a.config.BrowserCommand[1:]...), url)
	cmd := exec.Command(a.config.BrowserCommand[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", a.config.BrowserCommand[0], err)
	}
	// Reap the child without blocking the event loop
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (a *App) draw() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	a.view.Draw(a.screen)
	a.drawStatusBar()

	// Dialogs are drawn last so they sit on top
	a.helpDialog.Draw(a.screen)
	a.confirmDialog.Draw(a.screen)

	a.screen.Show()
}

func (a *App) drawStatusBar() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)

	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, style)
	}

	search := a.view.GetSearchState()
	modeStr := "NORMAL"
	if a.mode == ModeSearch {
		modeStr = "/" + search.Query()
	}
	drawText(a.screen, 0, h-1, style, modeStr)

	if a.mode == ModeSearch {
		cursorX := 1 + runewidth.StringWidth(string(search.query[:search.cursorPos]))
		ch := ' '
		if search.cursorPos < len(search.query) {
			ch = search.query[search.cursorPos]
		}
		a.screen.SetContent(cursorX, h-1, ch, nil, style.Reverse(true))
	}

	right := "? help"
	if n := len(a.view.Reports()); n > 0 {
		right = fmt.Sprintf("%d/%d  ? help", a.view.selected+1, n)
	}
	drawText(a.screen, w-runewidth.StringWidth(right)-1, h-1, style.Foreground(ColorDimmed), right)

	if a.statusMessage != "" {
		msgX := runewidth.StringWidth(modeStr) + 2
		maxMsgWidth := w - msgX - runewidth.StringWidth(right) - 2
		if maxMsgWidth > 0 {
			msg := runewidth.Truncate(a.statusMessage, maxMsgWidth, "...")
			drawText(a.screen, msgX, h-1, style.Foreground(ColorYellow), msg)
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
