package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// OptionalInt accepts a JSON number, a numeric string, "" or null. Blank values decode to unset.
type OptionalInt struct {
	Value *int
}

func (o *OptionalInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		o.Value = nil
		return nil
	}
	var text string
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
	} else {
		text = string(raw)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		o.Value = nil
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("invalid integer %q", text)
	}
	o.Value = &n
	return nil
}

// Ptr returns the decoded value or nil.
func (o OptionalInt) Ptr() *int {
	return o.Value
}

// intOrBlank renders nil as "".
func intOrBlank(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func stringOrBlank(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
