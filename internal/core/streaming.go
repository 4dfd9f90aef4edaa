package core

// streaming.go provides reader wrappers applied to every price-list file
// before it reaches the CSV parser:
//
//   - skipBOM: drops a leading UTF-8 byte-order mark (0xEF 0xBB 0xBF)
//   - utf8Validator: fails with ErrEncoding on the first invalid sequence
//
// Both work in O(buffer) memory regardless of file size.

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"
)

// ErrEncoding is returned when a file is not valid UTF-8.
var ErrEncoding = errors.New("encoding error: file is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM returns a reader positioned after the UTF-8 BOM, if r starts with one.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Validator passes bytes through unchanged and reports ErrEncoding as
// soon as an invalid sequence is seen. A multi-byte rune split across two
// reads is held back until the next read completes it.
type utf8Validator struct {
	reader  io.Reader
	pending []byte
	failed  bool
}

func newUTF8Validator(r io.Reader) *utf8Validator {
	return &utf8Validator{reader: r, pending: make([]byte, 0, utf8.UTFMax)}
}

// Read implements io.Reader.
func (v *utf8Validator) Read(p []byte) (int, error) {
	if v.failed {
		return 0, ErrEncoding
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := v.reader.Read(p)
	if n == 0 {
		if err == io.EOF && len(v.pending) > 0 {
			v.failed = true
			return 0, ErrEncoding
		}
		return 0, err
	}

	chunk := append(v.pending, p[:n]...)
	keep := 0
	if err != io.EOF {
		keep = incompleteTrailingBytes(chunk)
	}
	if !utf8.Valid(chunk[:len(chunk)-keep]) {
		v.failed = true
		return 0, ErrEncoding
	}
	v.pending = append(v.pending[:0], chunk[len(chunk)-keep:]...)

	return n, err
}

// incompleteTrailingBytes returns how many bytes at the end of data begin a
// multi-byte UTF-8 sequence that is not yet complete.
func incompleteTrailingBytes(data []byte) int {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(data); i++ {
		b := data[len(data)-i]
		if b >= 0xC0 {
			if i < runeLen(b) {
				return i
			}
			return 0
		}
		// Anything but a continuation byte ends the search.
		if b&0xC0 != 0x80 {
			return 0
		}
	}
	return 0
}

// runeLen returns the expected length of a UTF-8 sequence starting with b.
func runeLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0:
		return 0
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}

// wrapForReading applies BOM skipping and UTF-8 validation in that order.
func wrapForReading(r io.Reader) io.Reader {
	return newUTF8Validator(skipBOM(r))
}
