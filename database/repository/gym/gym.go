package gymRepo

import (
	"context"
	"errors"

	"gymslot/models"
)

// ErrNotFound is returned when no gym matches the given id.
var ErrNotFound = errors.New("gym not found")

// GymRepository defines read access to gym records. Gym management is owned by
// the partner/admin collaborator; this core only reads price and capacity.
type GymRepository interface {
	// GetByID retrieves a gym by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Gym, error)
}
