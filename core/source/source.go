// Package source resolves command-line inputs into readable text.
// An input is either stdin ("-"), an http(s) URL, or a file path / glob
// pattern. File and stdin bytes are decoded to UTF-8 before counting.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gaurav-prasanna/pagestat/core"
)

// ErrNoInput is returned when a pattern matches no readable file.
var ErrNoInput = errors.New("no input matched")

// Stdin is the argument that selects standard input.
const Stdin = "-"

// Classify reports which kind of source arg names.
func Classify(arg string) core.SourceKind {
	if arg == Stdin {
		return core.KindStdin
	}
	if u, err := url.Parse(arg); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return core.KindURL
	}
	return core.KindFile
}

// Expand resolves a file path or doublestar pattern ("docs/**/*.md") into a
// sorted list of regular files. An existing file is returned as is, even
// when its name contains glob metacharacters.
func Expand(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil && info.Mode().IsRegular() {
		return []string{filepath.Clean(pattern)}, nil
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, pattern)
	}

	sort.Strings(matches)
	for i, m := range matches {
		matches[i] = filepath.Clean(m)
	}
	return matches, nil
}

// ReadFile reads a file and decodes it to UTF-8.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data)
}

// ReadAll reads r to EOF (typically stdin) and decodes it to UTF-8.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return Decode(data)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw bytes to a UTF-8 string. A byte-order mark selects
// UTF-8 or UTF-16 and is stripped. Data without a BOM that is not valid
// UTF-8 is decoded as Windows-1252, the most common legacy encoding for
// plain text files.
func Decode(data []byte) (string, error) {
	var dec *encoding.Decoder
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	case bytes.HasPrefix(data, bomUTF16LE):
		dec = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case bytes.HasPrefix(data, bomUTF16BE):
		dec = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	case utf8.Valid(data):
		return string(data), nil
	default:
		dec = charmap.Windows1252.NewDecoder()
	}

	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("decoding input: %w", err)
	}
	return string(out), nil
}
