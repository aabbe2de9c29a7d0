package viewbuf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/karsden/veranda/viewbuf"
)

func TestBuffer_SpillsAcrossPages(t *testing.T) {
	var b viewbuf.Buffer
	chunk := strings.Repeat("x", 1000)
	for i := 0; i < 10; i++ { // well past one page
		b.WriteString(chunk)
	}
	if b.Len() != 10000 {
		t.Fatalf("Len = %d, want 10000", b.Len())
	}

	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != 10000 || out.Len() != 10000 {
		t.Fatalf("drained %d bytes, sink has %d", n, out.Len())
	}
}

func TestBuffer_OrderWithFragments(t *testing.T) {
	var b viewbuf.Buffer
	b.WriteString("head|")
	b.AppendFragment(viewbuf.HTML("<b>bold</b>"))
	b.Write([]byte("|tail"))

	var out bytes.Buffer
	if _, err := b.WriteTo(&out); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if out.String() != "head|<b>bold</b>|tail" {
		t.Fatalf("drained %q", out.String())
	}
}

func TestBuffer_WriteToIsRepeatableUntilReset(t *testing.T) {
	var b viewbuf.Buffer
	b.WriteString("abc")

	var first, second bytes.Buffer
	if _, err := b.WriteTo(&first); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if _, err := b.WriteTo(&second); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if first.String() != "abc" || second.String() != "abc" {
		t.Fatalf("WriteTo drained destructively: %q / %q", first.String(), second.String())
	}

	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len after Reset = %d", b.Len())
	}
	var third bytes.Buffer
	if _, err := b.WriteTo(&third); err != nil {
		t.Fatalf("WriteTo after Reset: %v", err)
	}
	if third.Len() != 0 {
		t.Fatalf("Reset buffer still drains content")
	}
}

func TestBuffer_ReusableAfterReset(t *testing.T) {
	var b viewbuf.Buffer
	b.WriteString(strings.Repeat("a", 5000))
	b.Reset()

	b.WriteString("fresh")
	var out bytes.Buffer
	if _, err := b.WriteTo(&out); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if out.String() != "fresh" {
		t.Fatalf("reused buffer drained %q", out.String())
	}
}
