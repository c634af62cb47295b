package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/aimtrainer/internal/draw"
	"github.com/tomz197/aimtrainer/internal/game"
	"github.com/tomz197/aimtrainer/internal/input"
	"github.com/tomz197/aimtrainer/internal/loop/config"
	"github.com/tomz197/aimtrainer/internal/loop/server"
	"github.com/tomz197/aimtrainer/internal/object"
)

// Client runs one player's session: input, game update and rendering.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	game         *game.Game
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	styles       styles
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Profile      termenv.Profile // Colour profile of the player's terminal
	Sounder      game.Sounder
	Sensitivity  float64
	Volume       float64       // Negative selects the default
	Rand         object.Intner // Nil uses a time-seeded source
	Logger       *log.Logger
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("user", opts.Username)

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, state.windowWidth, state.windowHeight)
	canvas := draw.NewCanvas(renderWidth, renderHeight, opts.Profile)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(opts.Profile)

	g := game.New(game.Options{
		Sensitivity:   opts.Sensitivity,
		Volume:        opts.Volume,
		Sounder:       opts.Sounder,
		Rand:          opts.Rand,
		Logger:        logger,
		Width:         renderWidth,
		Height:        renderHeight,
		PointerScaleX: config.PointerUnitsPerColumn,
		PointerScaleY: config.PointerUnitsPerRow,
	})

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		game:         g,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		styles:       newStyles(renderer),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the player quits, the
// connection drops or the server shutdown countdown ends.
func (c *Client) Run() error {
	draw.EnterGame(c.writer)
	defer draw.LeaveGame(c.writer)

	c.logger.Info("session started")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.Mode {
		case ModePlaying:
			c.game.Update()
			if c.game.QuitRequested() {
				c.state.Running = false
			}
		case ModeShutdown:
			c.updateShutdownState()
		}

		c.server.SendStats(c.handle.ID, c.game.Stats())

		if err := c.drawFrame(frameStart); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)

	stats := c.game.Stats()
	c.logger.Info("session ended", "hits", stats.Hits, "misses", stats.Misses, "accuracy", stats.Accuracy())
	return nil
}

// Game returns the session's game.
func (c *Client) Game() *game.Game {
	return c.game
}

// processInput reads input and applies each event in arrival order.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)
	if in.Closed {
		c.state.Running = false
	}

	if len(in.Events) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	for _, ev := range in.Events {
		c.handleEvent(ev)
	}
}

// handleEvent routes a single input event to the game.
func (c *Client) handleEvent(ev input.Event) {
	if c.state.Mode == ModeShutdown {
		if ev.Kind == input.EventKey && ev.Key == input.KeyQuit {
			c.state.Running = false
		}
		return
	}

	// Mouse positions relative to the render area
	x := float64(ev.X - c.canvas.OffsetCol())
	y := float64(ev.Y - c.canvas.OffsetRow())

	switch ev.Kind {
	case input.EventMouseMove:
		c.game.OnMouseMove(x, y)
	case input.EventClick:
		c.game.OnClick(x, y)
	case input.EventScroll:
		c.game.OnScroll(float64(ev.Delta))
	case input.EventKey:
		c.handleKey(ev.Key)
	}
}

func (c *Client) handleKey(k input.Key) {
	// Keyboard look in radians, expressed as a raw pointer delta
	step := config.KeyLookStep / c.game.Sensitivity()

	switch k {
	case input.KeyQuit:
		c.state.Running = false
	case input.KeyPause:
		c.game.OnTogglePause()
	case input.KeyFullscreen:
		c.toggleFullscreen()
	case input.KeyVolumeUp:
		c.game.OnVolume(config.VolumeStep)
	case input.KeyVolumeDown:
		c.game.OnVolume(-config.VolumeStep)
	case input.KeyGrow:
		c.game.OnScroll(1)
	case input.KeyShrink:
		c.game.OnScroll(-1)
	case input.KeyFire:
		c.game.OnFire()
	case input.KeyEnter:
		c.game.OnMenuConfirm()
	case input.KeyLookLeft:
		c.game.OnLook(-step, 0)
	case input.KeyLookRight:
		c.game.OnLook(step, 0)
	case input.KeyLookUp:
		c.game.OnLook(0, step)
	case input.KeyLookDown:
		c.game.OnLook(0, -step)
	}
}

// toggleFullscreen switches between the windowed area and the whole terminal.
func (c *Client) toggleFullscreen() {
	current := game.Geometry{
		X:      c.canvas.OffsetCol(),
		Y:      c.canvas.OffsetRow(),
		Width:  c.state.windowWidth,
		Height: c.state.windowHeight,
	}
	next := c.game.OnToggleFullscreen(current)
	if !c.game.Settings().Fullscreen {
		c.state.windowWidth = next.Width
		c.state.windowHeight = next.Height
	}
	c.updateScreen()
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.state.Mode = ModeShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize and fullscreen changes.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}

	maxWidth, maxHeight := c.state.windowWidth, c.state.windowHeight
	if c.game.Settings().Fullscreen {
		maxWidth, maxHeight = termWidth, termHeight
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, maxWidth, maxHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.SetOffset(offsetCol, offsetRow)
		c.canvas.ForceRedraw()
		c.chunkWriter.SetOffset(offsetCol, offsetRow)
		c.game.OnResize(renderWidth, renderHeight)
	}
}

// clampTermSize clamps terminal dimensions to maxWidth x maxHeight and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, maxWidth)
	renderHeight = min(termHeight, maxHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
