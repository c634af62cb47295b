package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/aimtrainer/internal/game"
	"github.com/tomz197/aimtrainer/internal/loop/config"
	"github.com/tomz197/aimtrainer/internal/render"
)

const volumeBarCells = 20

// styles holds the lipgloss styles for overlays, bound to the session's renderer.
type styles struct {
	hud      lipgloss.Style
	title    lipgloss.Style
	button   lipgloss.Style
	hovered  lipgloss.Style
	panel    lipgloss.Style
	warning  lipgloss.Style
	renderer *lipgloss.Renderer
}

func newStyles(r *lipgloss.Renderer) styles {
	accent := lipgloss.Color("#00ffff")
	frame := lipgloss.Color("#5f87af")

	button := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frame).
		Foreground(lipgloss.Color("#d0d0d0")).
		Width(config.MenuButtonWidth - 2).
		Align(lipgloss.Center)
	hovered := button.
		BorderForeground(accent).
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#00d7d7"))
	panel := r.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(frame).
		Padding(0, 1)

	return styles{
		hud:      r.NewStyle().Foreground(lipgloss.Color("#c0c0c0")),
		title:    r.NewStyle().Bold(true).Foreground(accent),
		button:   button,
		hovered:  hovered,
		panel:    panel,
		warning:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaf00")),
		renderer: r,
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame(now time.Time) error {
	// On mode or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	modeChanged := c.state.Mode != c.state.prevMode
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if modeChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevMode = c.state.Mode
		c.state.wasInactive = c.state.isInactive
	}

	render.Draw(c.canvas, render.Scene{
		Orientation: c.game.Orientation(),
		Target:      c.game.Target(),
		Phase:       c.game.AnimationPhase(),
	})

	c.canvas.Render(c.chunkWriter)

	// Draw border when the render area is smaller than the terminal
	c.canvas.RenderBorder(c.chunkWriter)

	c.state.fps.Tick(now)
	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the overlay for the current mode.
func (c *Client) drawUI() {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	centerX := width / 2
	centerY := height / 2

	if c.state.Mode == ModeShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(width, height)
	c.drawVolumeOverlay(centerX)
	if c.game.Paused() {
		c.drawPauseMenu(centerX)
	}
}

// text writes s at the 1-based canvas position and marks the cells dirty so
// the scene repaints them next frame.
func (c *Client) text(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// block writes a multi-line lipgloss block with its top-left at (col, row).
func (c *Client) block(col, row int, s string) {
	for i, line := range strings.Split(s, "\n") {
		c.text(col, row+i, line)
	}
}

// centered writes s horizontally centred on centerX.
func (c *Client) centered(centerX, row int, s string) {
	c.text(centerX-lipgloss.Width(s)/2, row, s)
}

// drawHUD draws the FPS counter, shot stats and hints.
func (c *Client) drawHUD(width, height int) {
	hud := c.styles.hud

	c.text(2, 1, hud.Render(fmt.Sprintf("FPS: %-4.0f", c.state.fps.Value())))

	stats := c.game.Stats()
	statsText := fmt.Sprintf("Hits: %-4d Misses: %-4d Acc: %5.1f%%  Radius: %.1f",
		stats.Hits, stats.Misses, stats.Accuracy(), c.game.Target().Radius)
	if lipgloss.Width(statsText)+2 < width {
		c.text(width-lipgloss.Width(statsText), 1, hud.Render(statsText))
	}

	hint := "Mouse aim  Click/Space fire  Wheel/[ ] size  +/- volume  P pause  F fullscreen  Q quit"
	if lipgloss.Width(hint)+2 > width {
		hint = "Space fire  P pause  Q quit"
	}
	c.text(2, height, hud.Render(hint))

	snap := c.server.GetSnapshot()
	if snap.Players > 1 {
		players := fmt.Sprintf("Players: %d  Server hits: %-6d", snap.Players, snap.TotalHits)
		c.text(width-lipgloss.Width(players), height, hud.Render(players))
	}
}

// drawVolumeOverlay shows the volume bar after a change, fading out at the end.
func (c *Client) drawVolumeOverlay(centerX int) {
	visible, alpha := c.game.VolumeOverlay()
	if !visible {
		return
	}

	volume := c.game.Settings().Volume
	filled := int(volume*volumeBarCells + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", volumeBarCells-filled)
	line := fmt.Sprintf("Volume %s %3d%%", bar, int(volume*100+0.5))

	// Fade toward the scene background
	fg := colorful.Color{R: 1, G: 1, B: 1}.BlendRgb(render.Sky, 1-alpha)
	style := c.styles.renderer.NewStyle().Foreground(lipgloss.Color(fg.Hex()))
	c.centered(centerX, 3, style.Render(line))
}

// drawPauseMenu draws the menu buttons and, when open, the settings panel.
func (c *Client) drawPauseMenu(centerX int) {
	menu := c.game.Menu()

	first := menu.Button(game.ButtonResume)
	c.centered(centerX, first.Y-2, c.styles.title.Render("PAUSED"))

	for _, b := range menu.Buttons() {
		r := menu.Button(b)
		style := c.styles.button
		if menu.Hovered() == b {
			style = c.styles.hovered
		}
		c.block(r.X, r.Y, style.Render(b.String()))
	}

	c.drawLeaderboard(first)

	if !menu.SettingsOpen() {
		return
	}

	settings := c.game.Settings()
	lines := []string{
		fmt.Sprintf("Volume       %3d%%   (+/-)", int(settings.Volume*100+0.5)),
		fmt.Sprintf("Target size  %.1f    ([ ] or wheel)", c.game.Target().Radius),
		fmt.Sprintf("Sensitivity  %.4f", c.game.Sensitivity()),
		fmt.Sprintf("Fullscreen   %-5v  (F)", settings.Fullscreen),
	}
	panel := c.styles.panel.Render(strings.Join(lines, "\n"))

	last := menu.Button(game.ButtonQuit)
	c.block(centerX-lipgloss.Width(panel)/2, last.Y+last.Height+1, panel)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, c.styles.warning.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.centered(centerX, centerY, c.styles.hud.Render(msg))
	c.centered(centerX, centerY+2, c.styles.hud.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, c.styles.warning.Render("SERVER SHUTTING DOWN"))
	c.centered(centerX, centerY-1, c.styles.hud.Render("The server is restarting for maintenance."))
	c.centered(centerX, centerY, c.styles.hud.Render("Please reconnect in a moment."))

	stats := c.game.Stats()
	summary := fmt.Sprintf("Final: %d hits, %d misses, %.1f%% accuracy", stats.Hits, stats.Misses, stats.Accuracy())
	c.centered(centerX, centerY+2, c.styles.hud.Render(summary))

	remaining := int(c.state.shutdownTimer) + 1
	c.centered(centerX, centerY+4, c.styles.hud.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)))
	c.centered(centerX, centerY+6, c.styles.hud.Render("Press Q to disconnect now"))
}

// drawLeaderboard lists the best sessions on the server beside the menu.
// Hidden when nobody has enough shots to rank.
func (c *Client) drawLeaderboard(anchor game.Rect) {
	top := c.server.GetSnapshot().TopScores
	if len(top) == 0 {
		return
	}

	lines := []string{c.styles.title.Render("Top players")}
	for i, e := range top {
		name := e.Username
		if len(name) > 12 {
			name = name[:12]
		}
		lines = append(lines, fmt.Sprintf("%d. %-12s %4d  %5.1f%%", i+1, name, e.Hits, e.Accuracy))
	}
	panel := c.styles.panel.Render(strings.Join(lines, "\n"))

	col := anchor.X + anchor.Width + 3
	if col+lipgloss.Width(panel) > c.canvas.TerminalWidth() {
		return
	}
	c.block(col, anchor.Y, panel)
}
