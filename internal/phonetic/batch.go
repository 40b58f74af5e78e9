package phonetic

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Transliterate renders every whitespace-delimited token of text with the
// built-in tables and keeps the whitespace between tokens verbatim.
func Transliterate(text string) (string, error) {
	tr, err := NewDefault()
	if err != nil {
		return "", err
	}
	return tr.Transliterate(text), nil
}

// Transliterate renders every whitespace-delimited token of text
// independently and keeps the whitespace between tokens verbatim.
func (tr *Transducer) Transliterate(text string) string {
	var b bytes.Buffer
	b.Grow(len(text) * 2)
	start := -1
	for i, r := range text {
		if isBoundary(r) {
			if start >= 0 {
				b.WriteString(tr.Render(text[start:i]))
				start = -1
			}
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		b.WriteString(tr.Render(text[start:]))
	}
	return b.String()
}

// NewTransformer returns a transform.Transformer that renders a UTF-8
// stream token by token, for use with transform.NewReader or
// transform.NewWriter. A token is held in memory until the whitespace or
// end of input that closes it, so a token longer than the caller's buffer
// renders exactly as Render would.
func (tr *Transducer) NewTransformer() transform.Transformer {
	return &tokenTransformer{tr: tr}
}

type tokenTransformer struct {
	tr *Transducer

	// pending holds the bytes of an unfinished token.
	pending []byte
	// out holds rendered bytes that did not fit into dst.
	out []byte
}

func (t *tokenTransformer) Reset() {
	t.pending = t.pending[:0]
	t.out = nil
}

func (t *tokenTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for {
		if len(t.out) > 0 {
			n := copy(dst[nDst:], t.out)
			nDst += n
			t.out = t.out[n:]
			if len(t.out) > 0 {
				return nDst, nSrc, transform.ErrShortDst
			}
		}
		if nSrc == len(src) {
			break
		}

		rest := src[nSrc:]
		r, size := utf8.DecodeRune(rest)
		if r == utf8.RuneError && size <= 1 && !atEOF && !utf8.FullRune(rest) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if isBoundary(r) {
			if len(t.pending) > 0 {
				t.flushToken()
				continue
			}
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], rest[:size])
			nSrc += size
			continue
		}

		end := bytes.IndexFunc(rest, isBoundary)
		if end < 0 && !atEOF {
			n := lastFullRune(rest)
			t.pending = append(t.pending, rest[:n]...)
			nSrc += n
			if n < len(rest) {
				return nDst, nSrc, transform.ErrShortSrc
			}
			return nDst, nSrc, nil
		}
		if end < 0 {
			end = len(rest)
		}

		t.pending = append(t.pending, rest[:end]...)
		nSrc += end
		t.flushToken()
	}

	if atEOF && len(t.pending) > 0 {
		t.flushToken()
		n := copy(dst[nDst:], t.out)
		nDst += n
		t.out = t.out[n:]
		if len(t.out) > 0 {
			return nDst, nSrc, transform.ErrShortDst
		}
	}
	return nDst, nSrc, nil
}

func (t *tokenTransformer) flushToken() {
	t.out = append(t.out, t.tr.Render(string(t.pending))...)
	t.pending = t.pending[:0]
}

// lastFullRune returns the length of the longest prefix of b that ends on
// a rune boundary.
func lastFullRune(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if utf8.FullRune(b[i:]) || i == 0 {
			return len(b)
		}
		return i
	}
	return len(b)
}
