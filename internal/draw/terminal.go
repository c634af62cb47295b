package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Use MoveCursor, WriteString, WriteRune to accumulate,
// then Flush to write to the underlying writer. Implements io.Writer for Canvas.Render.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all MoveCursor coordinates.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString(termenv.CSI)
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render and other writers.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes a string at a specific position. col and row are 1-based
// canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer. Uses the same chunk size as Canvas.Render.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnterGame switches w to the alternate screen, hides the cursor and turns
// on any-motion mouse reporting in SGR encoding.
func EnterGame(w io.Writer) {
	o := termenv.NewOutput(w)
	o.AltScreen()
	o.HideCursor()
	o.EnableMouseAllMotion()
	o.EnableMouseExtendedMode()
	o.ClearScreen()
}

// LeaveGame undoes EnterGame.
func LeaveGame(w io.Writer) {
	o := termenv.NewOutput(w)
	o.DisableMouseExtendedMode()
	o.DisableMouseAllMotion()
	o.Reset()
	o.ShowCursor()
	o.ExitAltScreen()
}

// ClearScreen clears the terminal and moves the cursor to the top-left.
func ClearScreen(w io.Writer) {
	termenv.NewOutput(w).ClearScreen()
}

// Environ is the environment of a remote terminal.
type Environ struct {
	Term string   // TERM as negotiated for the PTY
	Vars []string // KEY=value pairs sent by the client
}

// Environ implements termenv.Environ.
func (e Environ) Environ() []string {
	return append([]string{"TERM=" + e.Term}, e.Vars...)
}

// Getenv implements termenv.Environ.
func (e Environ) Getenv(key string) string {
	if key == "TERM" {
		return e.Term
	}
	prefix := key + "="
	for _, kv := range e.Vars {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):]
		}
	}
	return ""
}

// RemoteProfile detects the colour profile of a terminal that is not the
// local one, such as an SSH client, from its environment.
func RemoteProfile(w io.Writer, env Environ) termenv.Profile {
	o := termenv.NewOutput(w, termenv.WithEnvironment(env), termenv.WithTTY(true), termenv.WithUnsafe())
	return o.EnvColorProfile()
}

// LocalProfile detects the colour profile of stdout.
func LocalProfile() termenv.Profile {
	return termenv.NewOutput(os.Stdout).EnvColorProfile()
}
