package viewbuf

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var (
	// ErrInvalidRange is returned by the range write operations when the
	// offset and length fall outside the source.
	ErrInvalidRange = errors.New("viewbuf: offset and length are outside the source bounds")

	// ErrNilFragment is returned by WriteFragment for a nil fragment.
	ErrNilFragment = errors.New("viewbuf: fragment must not be nil")
)

// mode is the writer's two-state machine. The only allowed transition is
// buffering -> direct, taken once by the first successful Flush; it never
// reverts.
type mode int

const (
	buffering mode = iota // writes accumulate in the page buffer
	direct                // writes pass straight through to the sink
)

// Writer is a text sink for view rendering. It buffers until first flushed,
// then forwards everything to the underlying response writer. A Writer is
// owned by a single rendering pass.
type Writer struct {
	sink io.Writer
	buf  Buffer
	mode mode
}

// NewWriter wraps sink in a buffering writer.
func NewWriter(sink io.Writer) *Writer {
	if sink == nil {
		panic("viewbuf: NewWriter requires a non-nil sink")
	}
	return &Writer{sink: sink}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.mode == direct {
		return w.sink.Write(p)
	}
	w.buf.Write(p)
	return len(p), nil
}

func (w *Writer) WriteString(s string) (int, error) {
	if w.mode == direct {
		return io.WriteString(w.sink, s)
	}
	w.buf.WriteString(s)
	return len(s), nil
}

func (w *Writer) WriteByte(c byte) error {
	_, err := w.Write([]byte{c})
	return err
}

func (w *Writer) WriteRune(r rune) (int, error) {
	var b [utf8.UTFMax]byte
	n := utf8.EncodeRune(b[:], r)
	return w.Write(b[:n])
}

// WriteLine writes s followed by a newline.
func (w *Writer) WriteLine(s string) error {
	if _, err := w.WriteString(s); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// WriteStringRange writes n bytes of s starting at off. The bounds are
// validated before anything is written.
func (w *Writer) WriteStringRange(s string, off, n int) error {
	if off < 0 || n < 0 || off > len(s) || n > len(s)-off {
		return fmt.Errorf("%w: off=%d n=%d len=%d", ErrInvalidRange, off, n, len(s))
	}
	_, err := w.WriteString(s[off : off+n])
	return err
}

// WriteByteRange writes n bytes of p starting at off. The bounds are
// validated before anything is written.
func (w *Writer) WriteByteRange(p []byte, off, n int) error {
	if off < 0 || n < 0 || off > len(p) || n > len(p)-off {
		return fmt.Errorf("%w: off=%d n=%d len=%d", ErrInvalidRange, off, n, len(p))
	}
	_, err := w.Write(p[off : off+n])
	return err
}

// WriteFragment appends a pre-rendered fragment. While buffering the
// fragment is held as an opaque unit; once direct it renders into the sink
// immediately.
func (w *Writer) WriteFragment(f Fragment) error {
	if f == nil {
		return ErrNilFragment
	}
	if w.mode == direct {
		return f.Render(w.sink)
	}
	w.buf.AppendFragment(f)
	return nil
}

// Flush drains the accumulated content into the sink exactly once and
// switches the writer to direct mode. Every later Flush only forwards to
// the sink's own Flush when it has one. When draining fails the writer
// stays buffering and the rendering pass is expected to abort.
func (w *Writer) Flush() error {
	if w.mode == buffering {
		if _, err := w.buf.WriteTo(w.sink); err != nil {
			return err
		}
		w.buf.Reset()
		w.mode = direct
	}
	if f, ok := w.sink.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Buffering reports whether the writer is still accumulating output.
func (w *Writer) Buffering() bool { return w.mode == buffering }

// Buffered is the number of buffered text bytes.
func (w *Writer) Buffered() int { return w.buf.Len() }
