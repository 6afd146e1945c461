// Package encoding normalizes uploaded files to UTF-8. Utility-company
// meter exports arrive in whatever charset the portal produces,
// commonly Windows-1252 or UTF-16 with a BOM.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how many bytes are examined for BOM and charset
// detection before any decoding decision is made.
const sniffLen = 4096

type bom struct {
	prefix  []byte
	decoder func(*bufio.Reader) io.Reader
}

var boms = []bom{
	{
		// UTF-8 BOM is stripped, the rest passes through.
		prefix: []byte{0xEF, 0xBB, 0xBF},
		decoder: func(br *bufio.Reader) io.Reader {
			_, _ = br.Discard(3)
			return br
		},
	},
	{
		prefix: []byte{0xFF, 0xFE},
		decoder: func(br *bufio.Reader) io.Reader {
			return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
		},
	},
	{
		prefix: []byte{0xFE, 0xFF},
		decoder: func(br *bufio.Reader) io.Reader {
			return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
		},
	},
}

// NewUTF8Reader wraps r so its content reads as UTF-8 regardless of
// the source encoding. A BOM wins; otherwise content that already
// validates as UTF-8 passes through, then chardet heuristics decide,
// with Windows-1252 as the final fallback for legacy exports.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if bytes.HasPrefix(head, b.prefix) {
			return b.decoder(br), nil
		}
	}

	if utf8.Valid(head) {
		return br, nil
	}

	return transform.NewReader(br, sniffCharmap(head).NewDecoder()), nil
}

// sniffCharmap picks a legacy single-byte charset for content that is
// not UTF-8.
func sniffCharmap(head []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "ISO-8859-9":
		return charmap.ISO8859_9
	case "ISO-8859-15":
		return charmap.ISO8859_15
	default:
		return charmap.Windows1252
	}
}
