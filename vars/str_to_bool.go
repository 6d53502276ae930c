package vars

import "strings"

// StrToBool reads yes/no style strings; anything unrecognized is false
func StrToBool(str string) bool {
	value, _ := ParseBool(str)
	return value
}

// ParseBool is StrToBool that also reports whether str was recognized
func ParseBool(str string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true, true
	case "false", "f", "no", "n", "off", "0":
		return false, true
	}
	return false, false
}
