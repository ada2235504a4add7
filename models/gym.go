package models

// Gym is the read-only projection of a gym served by the gym collaborator.
type Gym struct {
	ID               string `bson:"id" json:"id"`
	Name             string `bson:"name" json:"name"`
	BasePrice        int64  `bson:"base_price" json:"base_price"` // Per-session price in minor-free currency units
	Capacity         int    `bson:"capacity" json:"capacity"`
	CurrentOccupancy int    `bson:"current_occupancy" json:"current_occupancy"`
	IsVerified       bool   `bson:"is_verified" json:"is_verified"`
}

// Bookable reports whether the gym can accept a new booking.
func (g *Gym) Bookable() bool {
	return g.IsVerified && g.CurrentOccupancy < g.Capacity
}
