package booking

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"
)

// qrTokenBytes sizes the random token; 32 bytes gives 256 bits of entropy.
const qrTokenBytes = 32

// QRIssuer mints time-boxed, single-use check-in tokens. Tokens carry no
// information derived from the booking; possession plus the booking id is the
// credential.
type QRIssuer struct {
	TTL time.Duration
	Now func() time.Time
}

func (q *QRIssuer) now() time.Time {
	if q.Now != nil {
		return q.Now()
	}
	return time.Now().UTC()
}

// Issue generates a fresh token and its expiry. Persistence and the
// one-valid-token-per-booking rule are the state machine's concern.
func (q *QRIssuer) Issue() (string, time.Time, error) {
	randomBytes := make([]byte, qrTokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate QR token: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	return token, q.now().Add(q.TTL), nil
}
