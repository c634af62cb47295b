package input

import (
	"bufio"
	"strconv"
)

// Kind is the type of an input event.
type Kind int

const (
	EventKey Kind = iota
	EventMouseMove
	EventClick
	EventScroll
)

// Key is a bound keyboard action.
type Key int

const (
	KeyNone Key = iota
	KeyQuit
	KeyPause
	KeyFullscreen
	KeyVolumeUp
	KeyVolumeDown
	KeyGrow
	KeyShrink
	KeyFire
	KeyEnter
	KeyLookLeft
	KeyLookRight
	KeyLookUp
	KeyLookDown
)

// Event is a single decoded input. Mouse coordinates are 1-based terminal cells.
type Event struct {
	Kind  Kind
	Key   Key
	X, Y  int
	Delta int // Scroll: +1 wheel up, -1 wheel down
}

// Input is everything that arrived since the previous frame, in arrival order.
type Input struct {
	Events []Event
	Closed bool // The underlying reader hit EOF or an error
}

// Stream delivers input bytes via a channel and keeps partial escape
// sequences between frames.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 1024),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// decodes them into events.
func ReadInput(s *Stream) Input {
	buf := s.pending
	carried := len(buf)
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	events, rest := Parse(buf)
	switch {
	case len(rest) == 0:
	case len(rest) == 1 && (len(buf) == carried || s.closed):
		// A lone ESC with nothing after it for a whole frame is the Escape key
		events = append(events, Event{Kind: EventKey, Key: KeyPause})
	case !s.closed:
		s.pending = append([]byte(nil), rest...)
	}
	return Input{Events: events, Closed: s.closed}
}

// Parse decodes buf into events. An escape sequence cut off at the end of
// buf, including a trailing lone ESC, is returned as rest so it can be
// completed by the next read.
func Parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); {
		if buf[i] != '\x1b' {
			if k := keyForByte(buf[i]); k != KeyNone {
				events = append(events, Event{Kind: EventKey, Key: k})
			}
			i++
			continue
		}

		// ESC at the end of the buffer may start a sequence still in flight
		if i+1 >= len(buf) {
			return events, buf[i:]
		}

		switch buf[i+1] {
		case '[':
			ev, n, ok := parseCSI(buf[i:])
			if !ok {
				return events, buf[i:]
			}
			if ev != nil {
				events = append(events, *ev)
			}
			i += n
		case 'O': // SS3 arrows in application cursor mode
			if i+2 >= len(buf) {
				return events, buf[i:]
			}
			if k := arrowKey(buf[i+2]); k != KeyNone {
				events = append(events, Event{Kind: EventKey, Key: k})
			}
			i += 3
		case '\x1b': // Escape key followed by more input
			events = append(events, Event{Kind: EventKey, Key: KeyPause})
			i++
		default: // Alt chord, unbound
			i += 2
		}
	}
	return events, nil
}

// parseCSI decodes one CSI sequence starting at seq[0] == ESC. It returns
// the event (nil for unbound sequences), the bytes consumed, and false if
// the sequence is incomplete.
func parseCSI(seq []byte) (*Event, int, bool) {
	// Find the final byte (0x40..0x7e) after ESC [
	end := -1
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			end = j
			break
		}
	}
	if end < 0 {
		return nil, 0, false
	}

	params := seq[2:end]
	final := seq[end]
	n := end + 1

	if len(params) > 0 && params[0] == '<' && (final == 'M' || final == 'm') {
		return parseSGRMouse(params[1:], final == 'M'), n, true
	}

	if len(params) == 0 {
		if k := arrowKey(final); k != KeyNone {
			return &Event{Kind: EventKey, Key: k}, n, true
		}
		return nil, n, true
	}

	if final == '~' && string(params) == "23" { // F11
		return &Event{Kind: EventKey, Key: KeyFullscreen}, n, true
	}
	return nil, n, true
}

// parseSGRMouse decodes "b;x;y" from an SGR mouse report.
func parseSGRMouse(params []byte, press bool) *Event {
	fields := splitParams(params)
	if len(fields) != 3 {
		return nil
	}
	b, err1 := strconv.Atoi(fields[0])
	x, err2 := strconv.Atoi(fields[1])
	y, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}

	switch {
	case b&64 != 0: // Wheel
		if !press {
			return nil
		}
		delta := 1
		if b&1 != 0 {
			delta = -1
		}
		return &Event{Kind: EventScroll, X: x, Y: y, Delta: delta}
	case b&32 != 0: // Motion, with or without a button held
		return &Event{Kind: EventMouseMove, X: x, Y: y}
	case press && b&3 == 0:
		return &Event{Kind: EventClick, X: x, Y: y}
	}
	return nil
}

func splitParams(p []byte) []string {
	var out []string
	start := 0
	for i, c := range p {
		if c == ';' {
			out = append(out, string(p[start:i]))
			start = i + 1
		}
	}
	return append(out, string(p[start:]))
}

func arrowKey(b byte) Key {
	switch b {
	case 'A':
		return KeyLookUp
	case 'B':
		return KeyLookDown
	case 'C':
		return KeyLookRight
	case 'D':
		return KeyLookLeft
	}
	return KeyNone
}

func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyQuit
	case 'p', 'P':
		return KeyPause
	case 'f', 'F':
		return KeyFullscreen
	case '+', '=':
		return KeyVolumeUp
	case '-', '_':
		return KeyVolumeDown
	case ']':
		return KeyGrow
	case '[':
		return KeyShrink
	case ' ':
		return KeyFire
	case '\r', '\n':
		return KeyEnter
	case 'a', 'A', 'h', 'H':
		return KeyLookLeft
	case 'd', 'D', 'l', 'L':
		return KeyLookRight
	case 'w', 'W', 'k', 'K':
		return KeyLookUp
	case 's', 'S', 'j', 'J':
		return KeyLookDown
	}
	return KeyNone
}
