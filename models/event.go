package models

import "time"

// Event is a charity event that owns a set of auctioned games
type Event struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	StartsAt  time.Time `db:"starts_at"`
	EndsAt    time.Time `db:"ends_at"` // Auction end time for every game in the event
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

// HasEnded reports whether the auction window is closed at the given time
func (e *Event) HasEnded(now time.Time) bool {
	return !now.Before(e.EndsAt)
}
