// Package viewbuf buffers rendered view output so it can be flushed lazily
// to the response stream. A Writer starts out accumulating everything in
// pooled pages; the first Flush replays the content to the underlying sink
// and irrevocably switches the writer to direct pass-through.
package viewbuf

import (
	"io"
	"sync"
)

// Fragment is an opaque pre-rendered content unit (markup, encoded text).
// While buffering it is held by reference; it is serialized into the sink
// only when the buffer drains or the writer has gone direct.
type Fragment interface {
	Render(w io.Writer) error
}

// HTML is a pre-rendered markup fragment.
type HTML string

func (h HTML) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(h))
	return err
}

const pageSize = 4096

type page struct{ b []byte }

var pagePool = sync.Pool{
	New: func() any { return &page{b: make([]byte, 0, pageSize)} },
}

// part is one ordered unit of buffered content: a text page or a fragment.
type part struct {
	page *page
	frag Fragment
}

// Buffer accumulates text and fragments in order over pooled pages. The
// zero value is ready to use.
type Buffer struct {
	parts []part
	cur   *page // open text page, nil when the last part is a fragment
	size  int   // buffered text bytes (fragments are opaque and not counted)
}

func (b *Buffer) writable() *page {
	if b.cur == nil || len(b.cur.b) == cap(b.cur.b) {
		p := pagePool.Get().(*page)
		p.b = p.b[:0]
		b.parts = append(b.parts, part{page: p})
		b.cur = p
	}
	return b.cur
}

// Write appends data, spilling across pages as needed.
func (b *Buffer) Write(data []byte) {
	for len(data) > 0 {
		p := b.writable()
		n := cap(p.b) - len(p.b)
		if n > len(data) {
			n = len(data)
		}
		p.b = append(p.b, data[:n]...)
		data = data[n:]
		b.size += n
	}
}

// WriteString appends s, spilling across pages as needed.
func (b *Buffer) WriteString(s string) {
	for len(s) > 0 {
		p := b.writable()
		n := cap(p.b) - len(p.b)
		if n > len(s) {
			n = len(s)
		}
		p.b = append(p.b, s[:n]...)
		s = s[n:]
		b.size += n
	}
}

// AppendFragment records f at the current position. Later text starts a
// fresh page so ordering is preserved.
func (b *Buffer) AppendFragment(f Fragment) {
	b.parts = append(b.parts, part{frag: f})
	b.cur = nil
}

// Len is the number of buffered text bytes.
func (b *Buffer) Len() int { return b.size }

// WriteTo drains the buffered content into w in order, rendering fragments
// through their serialization callback. The buffer is left intact; call
// Reset to release the pages.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, pt := range b.parts {
		if pt.frag != nil {
			if err := pt.frag.Render(w); err != nil {
				return total, err
			}
			continue
		}
		n, err := w.Write(pt.page.b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Reset empties the buffer and returns its pages to the pool.
func (b *Buffer) Reset() {
	for _, pt := range b.parts {
		if pt.page != nil {
			pt.page.b = pt.page.b[:0]
			pagePool.Put(pt.page)
		}
	}
	b.parts = nil
	b.cur = nil
	b.size = 0
}
