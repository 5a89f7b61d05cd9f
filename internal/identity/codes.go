// Package identity holds the id, phone and credential helpers used when accounts are created.
package identity

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// StaffCodePrefix prefixes every staff code.
const StaffCodePrefix = "STF"

// FormatStaffCode renders n as STF followed by at least five zero-padded digits.
func FormatStaffCode(n int) string {
	return fmt.Sprintf("%s%05d", StaffCodePrefix, n)
}

// ParseStaffCode extracts the numeric part of a staff code, ignoring non-digits.
func ParseStaffCode(code string) int {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, code)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// NextStaffCode returns the code following last; an empty last yields STF00001.
func NextStaffCode(last string) string {
	return FormatStaffCode(ParseStaffCode(last) + 1)
}

// UserCodeGenerator builds human-facing end-user ids.
type UserCodeGenerator struct {
	now  func() time.Time
	rand func(n int) int
}

// NewUserCodeGenerator uses the wall clock and math/rand.
func NewUserCodeGenerator() *UserCodeGenerator {
	return &UserCodeGenerator{now: time.Now, rand: rand.Intn}
}

// Next returns USER<unix millis><0..999>.
func (g *UserCodeGenerator) Next() string {
	return NewUserCode(g.now(), g.rand(1000))
}

// NewUserCode formats a user id from a timestamp and a random suffix.
func NewUserCode(at time.Time, suffix int) string {
	return fmt.Sprintf("USER%d%d", at.UnixMilli(), suffix)
}
