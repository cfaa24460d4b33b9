package subtitles

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// chardet names that htmlindex spells differently.
var charsetAliases = map[string]string{
	"gb-18030": "gb18030",
}

// ReadText loads path and returns its content as UTF-8 together with the
// charset it was decoded from.
func ReadText(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read subtitle: %w", err)
	}
	return DecodeText(data)
}

// DecodeText converts raw subtitle bytes to UTF-8. Valid UTF-8 input (with
// or without BOM) is passed through; anything else is sniffed with chardet.
func DecodeText(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), "UTF-8", nil
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", "", fmt.Errorf("detect charset: %w", err)
	}
	text, err := DecodeWith(data, result.Charset)
	if err != nil {
		return "", result.Charset, err
	}
	return text, result.Charset, nil
}

// DecodeWith decodes data from the named charset (any WHATWG label).
func DecodeWith(data []byte, charset string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if alias, ok := charsetAliases[name]; ok {
		name = alias
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", charset, err)
	}
	return string(bytes.TrimPrefix(decoded, utf8BOM)), nil
}
