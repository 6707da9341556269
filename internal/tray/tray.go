// Package tray provides a system tray menu for mudra.
package tray

import (
	"context"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/mudra/internal/gesture"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle     func(enabled bool)
	onOpenStatus func()
	onQuit       func()
	enabled      bool
	statusURL    string
	mu           sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuActive *systray.MenuItem
}

// New creates a new Tray with the given initial enabled state. statusURL is
// shown as a menu entry when non-empty.
func New(enabled bool, statusURL string) *Tray {
	return &Tray{
		enabled:   enabled,
		statusURL: statusURL,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpenStatus sets the callback for the status page menu item.
func (t *Tray) OnOpenStatus(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenStatus = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until Quit is called and must run on the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra hand gesture overlay")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Toggle gesture recognition")
	systray.AddSeparator()

	t.menuActive = systray.AddMenuItem(activeTitle(gesture.None), "Gesture currently shown")
	t.menuActive.Disable()
	systray.AddSeparator()
	t.mu.Unlock()

	menuStatus := systray.AddMenuItem("Open Status Page...", t.statusURL)
	if t.statusURL == "" {
		menuStatus.Disable()
	}
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuStatus.ClickedCh:
				t.handleOpenStatus()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handleToggle flips the enabled state and notifies the toggle callback.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleOpenStatus() {
	t.mu.RLock()
	callback := t.onOpenStatus
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetActiveGesture updates the active gesture entry in the menu.
func (t *Tray) SetActiveGesture(sym gesture.Symbol) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuActive != nil {
		t.menuActive.SetTitle(activeTitle(sym))
	}
}

// Follow mirrors decisions from updates into the menu until ctx ends or updates closes.
func (t *Tray) Follow(ctx context.Context, updates <-chan gesture.Symbol) {
	for {
		select {
		case <-ctx.Done():
			return
		case sym, ok := <-updates:
			if !ok {
				return
			}
			t.SetActiveGesture(sym)
		}
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Enabled"
	}
	return "○ Disabled"
}

func activeTitle(sym gesture.Symbol) string {
	if sym == gesture.None {
		return "Active: none"
	}
	return "Active: " + sym.String()
}
