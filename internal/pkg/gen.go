package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"strings"
)

// Room codes are short enough to read out loud; the alphabet drops the
// glyphs that are easy to confuse (I, O, 0, 1).
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 5
)

// GenerateRoomCode - generates a 5-character room code drawn uniformly from
// the 32-symbol alphabet.
func GenerateRoomCode() string {
	var builder strings.Builder
	builder.Grow(roomCodeLength)

	for range roomCodeLength {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			// crypto/rand only fails when the platform entropy source is
			// broken; there is no reasonable recovery here.
			panic(err)
		}

		builder.WriteByte(roomCodeAlphabet[n.Int64()])
	}

	return builder.String()
}

// NormalizeRoomCode - room codes compare case-insensitively; clients may type
// them in lowercase.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-session-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
