package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardinghub/boardinghub/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "meter_id;year;month;units\nMTR-1;2026;3;120\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("meter_id;units\n")...)
	assert.Equal(t, "meter_id;units\n", decode(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	var input []byte

	input = append(input, 0xFF, 0xFE)
	for _, c := range "meter_id;units\n" {
		input = append(input, byte(c), 0x00)
	}

	assert.Equal(t, "meter_id;units\n", decode(t, input))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 header with "Zähler" (meter): ä = 0xE4.
	input := []byte{
		'Z', 0xE4, 'h', 'l', 'e', 'r', ';',
		'u', 'n', 'i', 't', 's', '\n',
	}

	assert.Equal(t, "Zähler;units\n", decode(t, input))
}
