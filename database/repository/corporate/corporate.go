package corporateRepo

import (
	"context"
	"errors"

	"gymslot/models"
)

// ErrNotFound is returned when no access code matches.
var ErrNotFound = errors.New("corporate access code not found")

// ErrNoSessionsLeft is returned when a consume found no session to decrement.
var ErrNoSessionsLeft = errors.New("corporate access code has no sessions left")

// CorporateCodeRepository defines data access for corporate access codes.
// Codes are issued externally; this core only reads and consumes them.
type CorporateCodeRepository interface {
	// GetByCode retrieves an access code record.
	GetByCode(ctx context.Context, code string) (*models.CorporateAccessCode, error)
	// ConsumeSession atomically decrements remaining_sessions by one, failing
	// with ErrNoSessionsLeft if none remain. Two concurrent confirmations
	// against a code with one session left cannot both succeed.
	ConsumeSession(ctx context.Context, code string) error
}
