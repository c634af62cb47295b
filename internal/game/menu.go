package game

import "github.com/tomz197/aimtrainer/internal/loop/config"

// MenuButton identifies a pause menu button.
type MenuButton int

const (
	ButtonNone MenuButton = iota - 1
	ButtonResume
	ButtonSettings
	ButtonQuit
	buttonCount
)

// String returns the button label.
func (b MenuButton) String() string {
	switch b {
	case ButtonResume:
		return "RESUME"
	case ButtonSettings:
		return "SETTINGS"
	case ButtonQuit:
		return "QUIT"
	default:
		return ""
	}
}

// Rect is a button's area in 1-based terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// PauseMenu lays out and tracks the pause menu buttons.
type PauseMenu struct {
	buttons      [buttonCount]Rect
	hovered      MenuButton
	settingsOpen bool
}

// NewPauseMenu creates a menu laid out for the given framebuffer size.
func NewPauseMenu(width, height int) *PauseMenu {
	m := &PauseMenu{hovered: ButtonNone}
	m.Layout(width, height)
	return m
}

// Layout centres the button column in a width x height framebuffer.
func (m *PauseMenu) Layout(width, height int) {
	bw := config.MenuButtonWidth
	bh := config.MenuButtonHeight
	gap := config.MenuButtonSpacing

	total := int(buttonCount)*bh + (int(buttonCount)-1)*gap
	startY := (height-total)/2 + 1
	x := (width-bw)/2 + 1

	for i := range m.buttons {
		m.buttons[i] = Rect{
			X:      x,
			Y:      startY + i*(bh+gap),
			Width:  bw,
			Height: bh,
		}
	}
}

// ButtonAt returns the button under the cell, or ButtonNone.
func (m *PauseMenu) ButtonAt(x, y int) MenuButton {
	for i, r := range m.buttons {
		if r.Contains(x, y) {
			return MenuButton(i)
		}
	}
	return ButtonNone
}

// Hover updates the hovered button from a pointer position.
func (m *PauseMenu) Hover(x, y int) {
	m.hovered = m.ButtonAt(x, y)
}

// Hovered returns the button under the pointer.
func (m *PauseMenu) Hovered() MenuButton {
	return m.hovered
}

// Button returns the layout of b.
func (m *PauseMenu) Button(b MenuButton) Rect {
	if b < 0 || b >= buttonCount {
		return Rect{}
	}
	return m.buttons[b]
}

// Buttons lists every button in display order.
func (m *PauseMenu) Buttons() []MenuButton {
	return []MenuButton{ButtonResume, ButtonSettings, ButtonQuit}
}

// SettingsOpen reports whether the settings panel is shown.
func (m *PauseMenu) SettingsOpen() bool {
	return m.settingsOpen
}

// Reset closes the settings panel and clears hover state.
func (m *PauseMenu) Reset() {
	m.settingsOpen = false
	m.hovered = ButtonNone
}
