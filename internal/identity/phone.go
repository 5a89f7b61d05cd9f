package identity

import "strings"

// DefaultCallingCode applies when a stored number carries no known prefix.
const DefaultCallingCode = "+60"

// callingCodes is checked in order; longer codes sharing a leading digit come first.
var callingCodes = []string{
	"+971", "+966", "+886", "+852",
	"+91", "+44", "+1", "+86", "+82", "+81", "+61", "+63", "+62", "+66", "+65", "+60",
}

// SplitPhone decomposes a stored phone number into calling code and local number.
func SplitPhone(raw string) (prefix, local string) {
	for _, code := range callingCodes {
		if rest, ok := strings.CutPrefix(raw, code); ok {
			return code, rest
		}
	}
	return DefaultCallingCode, raw
}
