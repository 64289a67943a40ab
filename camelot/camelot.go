// Package camelot scores harmonic mixing compatibility between musical keys
// using the Camelot wheel, the circular key layout DJs use to pick tracks
// that blend without clashing.
package camelot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aminorkey/segue"
)

// Code is a position on the Camelot wheel: a number 1..12 and a letter,
// where A marks minor keys and B major keys.
type Code struct {
	Number int    `json:"number"`
	Letter string `json:"letter"`
}

// keyToCode maps every "<Pitch> <quality>" key name to its wheel position.
// Built once at init and never mutated.
var keyToCode = map[string]Code{
	"C major":  {8, "B"},
	"C minor":  {5, "A"},
	"C# major": {3, "B"},
	"C# minor": {12, "A"},
	"D major":  {10, "B"},
	"D minor":  {7, "A"},
	"D# major": {5, "B"},
	"D# minor": {2, "A"},
	"E major":  {12, "B"},
	"E minor":  {9, "A"},
	"F major":  {7, "B"},
	"F minor":  {4, "A"},
	"F# major": {2, "B"},
	"F# minor": {11, "A"},
	"G major":  {9, "B"},
	"G minor":  {6, "A"},
	"G# major": {4, "B"},
	"G# minor": {1, "A"},
	"A major":  {11, "B"},
	"A minor":  {8, "A"},
	"A# major": {6, "B"},
	"A# minor": {3, "A"},
	"B major":  {1, "B"},
	"B minor":  {10, "A"},
}

// FromKeyName looks up the wheel code for a key name like "A minor".
func FromKeyName(keyName string) (Code, error) {
	code, ok := keyToCode[keyName]
	if !ok {
		return Code{}, fmt.Errorf("%w: unknown key name %q", segue.ErrInvalidKeyCode, keyName)
	}
	return code, nil
}

// Parse splits a textual code like "8A" into its wheel position.
func Parse(s string) (Code, error) {
	if len(s) < 2 {
		return Code{}, fmt.Errorf("%w: %q is too short", segue.ErrInvalidKeyCode, s)
	}

	letter := strings.ToUpper(s[len(s)-1:])
	number, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Code{}, fmt.Errorf("%w: %q has no leading number", segue.ErrInvalidKeyCode, s)
	}

	code := Code{Number: number, Letter: letter}
	if err := code.Validate(); err != nil {
		return Code{}, err
	}
	return code, nil
}

// Validate checks the code lies on the wheel.
func (c Code) Validate() error {
	if c.Number < 1 || c.Number > 12 {
		return fmt.Errorf("%w: number %d outside 1..12", segue.ErrInvalidKeyCode, c.Number)
	}
	if c.Letter != "A" && c.Letter != "B" {
		return fmt.Errorf("%w: letter %q is not A or B", segue.ErrInvalidKeyCode, c.Letter)
	}
	return nil
}

// IsMinor reports whether the code sits on the inner (minor) ring.
func (c Code) IsMinor() bool {
	return c.Letter == "A"
}

func (c Code) String() string {
	return strconv.Itoa(c.Number) + c.Letter
}
