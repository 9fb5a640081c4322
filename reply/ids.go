package reply

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ComponentPrefix routes every search prompt button to the same handler.
	ComponentPrefix = "search:"

	optionIDPrefix   = ComponentPrefix + "option:"
	disabledIDPrefix = ComponentPrefix + "disabled:"
)

// OptionCustomID is the custom ID of the option at zero-based index i.
// The encoded number is one-based.
func OptionCustomID(i int) string {
	return fmt.Sprintf("%s%d", optionIDPrefix, i+1)
}

// DisabledCustomID is the custom ID of a disabled placeholder button.
func DisabledCustomID(i int) string {
	return fmt.Sprintf("%s%d", disabledIDPrefix, i+1)
}

// ParseOptionIndex returns the zero-based option index encoded in customID.
func ParseOptionIndex(customID string) (int, bool) {
	raw, ok := strings.CutPrefix(customID, optionIDPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}
