package secret

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ndanilin/accountd/internal/model"
)

var _ model.TokenGenerator = (*Generator)(nil)

// DefaultResetCodeBytes is the entropy of a reset code: 256 bits, encoded
// as 64 hex characters. Reset codes carry more entropy than login tokens
// because their validity window is longer and the capability is
// higher-value.
const DefaultResetCodeBytes = 32

// loginTokenBytes is the entropy of a login token. 32 bits is acceptable
// because tokens are additionally scoped by user and expire quickly.
const loginTokenBytes = 4

// ErrEntropy is returned when the secure random source fails. Fatal; a
// weaker source is never substituted.
var ErrEntropy = errors.New("entropy source unavailable")

// Generator produces unguessable tokens and codes from crypto/rand.
type Generator struct {
	resetCodeBytes int
}

// NewGenerator creates a Generator. resetCodeBytes <= 0 falls back to
// DefaultResetCodeBytes.
func NewGenerator(resetCodeBytes int) *Generator {
	if resetCodeBytes <= 0 {
		resetCodeBytes = DefaultResetCodeBytes
	}
	return &Generator{resetCodeBytes: resetCodeBytes}
}

// GenerateLoginToken draws 4 random bytes and encodes them as a proquint,
// a compact pronounceable form suitable for typing from an email.
func (g *Generator) GenerateLoginToken() (string, error) {
	buf := make([]byte, loginTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return proquintEncode(buf), nil
}

// GenerateResetCode draws the configured number of random bytes and
// encodes them as lowercase hex.
func (g *Generator) GenerateResetCode() (string, error) {
	buf := make([]byte, g.resetCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return hex.EncodeToString(buf), nil
}
