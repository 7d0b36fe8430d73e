package secret

import (
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loginTokenFormat = regexp.MustCompile(`^[bdfghjklmnprstvz][aiou][bdfghjklmnprstvz][aiou][bdfghjklmnprstvz]-[bdfghjklmnprstvz][aiou][bdfghjklmnprstvz][aiou][bdfghjklmnprstvz]$`)

func TestGenerator_GenerateLoginToken_Format(t *testing.T) {
	g := NewGenerator(0)

	for i := 0; i < 100; i++ {
		token, err := g.GenerateLoginToken()
		require.NoError(t, err)
		assert.Len(t, token, 11)
		assert.Regexp(t, loginTokenFormat, token)
	}
}

func TestGenerator_GenerateLoginToken_Decodable(t *testing.T) {
	g := NewGenerator(0)

	token, err := g.GenerateLoginToken()
	require.NoError(t, err)

	raw, err := proquintDecode(token)
	require.NoError(t, err)
	assert.Len(t, raw, 4)
	assert.Equal(t, token, proquintEncode(raw))
}

func TestGenerator_GenerateResetCode_Format(t *testing.T) {
	g := NewGenerator(DefaultResetCodeBytes)

	code, err := g.GenerateResetCode()
	require.NoError(t, err)
	assert.Len(t, code, 64)

	raw, err := hex.DecodeString(code)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestGenerator_GenerateResetCode_Unique(t *testing.T) {
	g := NewGenerator(0)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := g.GenerateResetCode()
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "reset code repeated")
		seen[code] = struct{}{}
	}
}

func TestProquint_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "zeros", data: []byte{0x00, 0x00, 0x00, 0x00}},
		{name: "ones", data: []byte{0xff, 0xff, 0xff, 0xff}},
		{name: "mixed", data: []byte{0x12, 0x34, 0xab, 0xcd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := proquintEncode(tt.data)
			decoded, err := proquintDecode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.data, decoded)
		})
	}
}

func TestProquint_DecodeRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "xxxxx-yyyyy", "babab-bab"} {
		_, err := proquintDecode(s)
		assert.Error(t, err, "input %q", s)
	}
}
