package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrNoIdentifiers is returned when an input yields no usable identifiers.
var ErrNoIdentifiers = errors.New("no identifiers found")

// IMEILength is the digit count of a well-formed IMEI.
const IMEILength = 15

// ParseIdentifiers splits raw text on commas and newlines, keeps only the
// digits of each token and drops tokens left empty. Order and duplicates
// are preserved.
func ParseIdentifiers(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	ids := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if id := Sanitize(tok); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Sanitize strips everything but ASCII digits from s.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ReadIdentifiers reads r to EOF and parses it with ParseIdentifiers.
func ReadIdentifiers(r io.Reader) ([]string, error) {
	var b strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading identifiers: %w", err)
	}
	ids := ParseIdentifiers(b.String())
	if len(ids) == 0 {
		return nil, ErrNoIdentifiers
	}
	return ids, nil
}

var modelShortCodes = map[string]string{
	"VLock":       "VL",
	"VLock Pro":   "VLPRO",
	"VLock Ultra": "VLULTRA",
}

// ModelShortCode returns the serial prefix for a product model, "VL" when
// the model is unknown.
func ModelShortCode(modelName string) string {
	if code, ok := modelShortCodes[modelName]; ok {
		return code
	}
	return "VL"
}

// SerialNumber derives the printed serial from the model's short code and
// the last 8 digits of the identifier.
func SerialNumber(modelName, identifier string) string {
	digits := identifier
	if len(digits) > 8 {
		digits = digits[len(digits)-8:]
	}
	return ModelShortCode(modelName) + digits
}
