package draw

import (
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Shades from lightest to darkest, used when the terminal has no colour.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// cell is what was last written to one terminal cell.
type cell struct {
	fg, bg string
	ch     rune
	valid  bool
}

// Canvas is a colour framebuffer with 2x vertical resolution using
// half-block characters. Each terminal cell holds two sub-pixels: the top
// one drawn as foreground, the bottom one as background.
type Canvas struct {
	width       int // Terminal columns
	height      int // Terminal rows
	pixelHeight int // height * 2
	pixels      []colorful.Color

	profile termenv.Profile
	prev    []cell // Last frame written, for diffing

	// 0-based terminal offset of the render area
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewCanvas creates a canvas for a width x height cell area rendered with
// the given colour profile.
func NewCanvas(width, height int, profile termenv.Profile) *Canvas {
	c := &Canvas{profile: profile}
	c.Resize(width, height)
	return c
}

// Resize reallocates the framebuffer if the cell area changed.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == c.width && height == c.height && c.pixels != nil {
		return
	}
	c.width = width
	c.height = height
	c.pixelHeight = height * 2
	c.pixels = make([]colorful.Color, width*c.pixelHeight)
	c.prev = make([]cell, width*height)
}

// SetOffset sets the column and row offset of the render area.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the render area width in cells.
func (c *Canvas) TerminalWidth() int {
	return c.width
}

// TerminalHeight returns the render area height in cells.
func (c *Canvas) TerminalHeight() int {
	return c.height
}

// PixelWidth returns the horizontal sub-pixel count.
func (c *Canvas) PixelWidth() int {
	return c.width
}

// PixelHeight returns the vertical sub-pixel count.
func (c *Canvas) PixelHeight() int {
	return c.pixelHeight
}

// Profile returns the colour profile used for output.
func (c *Canvas) Profile() termenv.Profile {
	return c.profile
}

// Fill sets every sub-pixel to col.
func (c *Canvas) Fill(col colorful.Color) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// Set sets the sub-pixel at (x, y). Out of range writes are dropped.
func (c *Canvas) Set(x, y int, col colorful.Color) {
	if x >= 0 && x < c.width && y >= 0 && y < c.pixelHeight {
		c.pixels[y*c.width+x] = col
	}
}

// At returns the sub-pixel at (x, y), black when out of range.
func (c *Canvas) At(x, y int) colorful.Color {
	if x >= 0 && x < c.width && y >= 0 && y < c.pixelHeight {
		return c.pixels[y*c.width+x]
	}
	return colorful.Color{}
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	clear(c.prev)
}

// MarkTextDirty invalidates n cells starting at the 1-based canvas position
// (col, row) so text drawn there is painted over on the next Render.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.height {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.width {
			c.prev[y*c.width+x].valid = false
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	lastX, lastY := -2, -2
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			next := c.cellAt(col, row)
			idx := row*c.width + col
			if c.prev[idx] == next {
				continue
			}
			c.prev[idx] = next

			if row != lastY || col != lastX+1 {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			c.writeCell(next)
			lastX, lastY = col, row
		}
	}
	if c.renderBuf.Len() > 0 {
		c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// cellAt converts the two sub-pixels of a cell into escape sequences and a glyph.
func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[row*2*c.width+col]
	bottom := c.pixels[(row*2+1)*c.width+col]

	if c.profile == termenv.Ascii {
		level := (top.R + top.G + top.B + bottom.R + bottom.G + bottom.B) / 6
		return cell{ch: ShadeLevel(level), valid: true}
	}

	fg := c.profile.FromColor(top).Sequence(false)
	if top == bottom {
		return cell{fg: fg, ch: BlockFull, valid: true}
	}
	lower := c.profile.FromColor(bottom)
	// Both halves quantize to the same palette entry
	if lower.Sequence(false) == fg {
		return cell{fg: fg, ch: BlockFull, valid: true}
	}
	return cell{fg: fg, bg: lower.Sequence(true), ch: BlockUpperHalf, valid: true}
}

func (c *Canvas) writeCell(cl cell) {
	switch {
	case cl.fg == "" && cl.bg == "":
		c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	case cl.bg == "":
		c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + ";" + cl.fg + "m")
	default:
		c.renderBuf.WriteString(termenv.CSI + cl.fg + ";" + cl.bg + "m")
	}
	c.renderBuf.WriteRune(cl.ch)
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString(termenv.CSI)
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder draws a box border around the canvas area when it is
// offset from the terminal edge on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.width + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.height + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.width)
	at := func(row, col int) {
		buf.WriteString(termenv.CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H")
	}

	if hasV {
		if hasH {
			at(top, left)
			buf.WriteString("┌" + line + "┐")
			at(bottom, left)
			buf.WriteString("└" + line + "┘")
		} else {
			at(top, c.offsetCol+1)
			buf.WriteString(line)
			at(bottom, c.offsetCol+1)
			buf.WriteString(line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.height + 1
		}
		for row := startRow; row < endRow; row++ {
			at(row, left)
			buf.WriteString("│")
			at(row, right)
			buf.WriteString("│")
		}
	}

	io.WriteString(w, buf.String())
}
