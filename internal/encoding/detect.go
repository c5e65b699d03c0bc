// Package encoding normalizes uploaded files to UTF-8. Spreadsheet exports
// arrive in a mix of UTF-8, UTF-16 and legacy Windows codepages depending on
// which program produced them.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// boms maps byte-order marks to the decoder that handles them. The UTF-8
// entry has a nil decoder; its BOM is stripped and the rest passes through.
var boms = []struct {
	prefix  []byte
	decoder func() *encoding.Decoder
}{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, decoder: nil},
	{prefix: []byte{0xFF, 0xFE}, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder},
	{prefix: []byte{0xFE, 0xFF}, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder},
}

// NewUTF8Reader detects the encoding of the input and returns a reader that
// decodes the content to UTF-8.
//
// Detection order:
//  1. Byte-order mark (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Content that is already valid UTF-8 passes through
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(buf, bom.prefix) {
			continue
		}

		if bom.decoder == nil {
			_, _ = br.Discard(len(bom.prefix))
			return br, nil
		}

		return transform.NewReader(br, bom.decoder()), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	result, detectErr := chardet.NewTextDetector().DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-1", "windows-1252":
			return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
		case "ISO-8859-9":
			return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}
