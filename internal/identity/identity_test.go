package identity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStaffCode(t *testing.T) {
	tests := []struct {
		last string
		want string
	}{
		{"", "STF00001"},
		{"STF00042", "STF00043"},
		{"STF00099", "STF00100"},
		{"STF99999", "STF100000"},
		{"garbage", "STF00001"},
	}
	for _, tt := range tests {
		t.Run(tt.last, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStaffCode(tt.last))
		})
	}
}

func TestParseStaffCode(t *testing.T) {
	assert.Equal(t, 42, ParseStaffCode("STF00042"))
	assert.Equal(t, 0, ParseStaffCode(""))
}

func TestSplitPhone(t *testing.T) {
	tests := []struct {
		raw        string
		wantPrefix string
		wantLocal  string
	}{
		{"+971501234567", "+971", "501234567"},
		{"+60123456789", "+60", "123456789"},
		{"+15551234567", "+1", "5551234567"},
		{"+8613800138000", "+86", "13800138000"},
		{"+886912345678", "+886", "912345678"},
		{"0123456789", "+60", "0123456789"},
		{"", "+60", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			prefix, local := SplitPhone(tt.raw)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantLocal, local)
		})
	}
}

func TestNewUserCode(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	assert.Equal(t, "USER17000000001237", NewUserCode(at, 7))

	gen := &UserCodeGenerator{now: func() time.Time { return at }, rand: func(int) int { return 512 }}
	assert.Equal(t, "USER1700000000123512", gen.Next())
	assert.True(t, strings.HasPrefix(NewUserCodeGenerator().Next(), "USER"))
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(TempPasswordLength)
	require.NoError(t, err)
	assert.Len(t, pw, TempPasswordLength)
	for _, r := range pw {
		assert.Contains(t, tempPasswordChars, string(r))
	}

	other, err := GeneratePassword(0)
	require.NoError(t, err)
	assert.Len(t, other, TempPasswordLength)
	assert.NotEqual(t, pw, other)
}
