package match

import (
	"fmt"
	"time"
)

// Status tracks the lifecycle of a cricket match.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusUpcoming:  {},
	StatusLive:      {},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Match is a scheduled cricket fixture contests are tied to.
type Match struct {
	ID        string
	Title     string
	TeamA     string
	TeamB     string
	Venue     string
	Format    string
	StartsAt  time.Time
	Status    Status
	CreatedAt time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Title == "" {
		return fmt.Errorf("match title is required")
	}
	if m.TeamA == "" || m.TeamB == "" {
		return fmt.Errorf("both match teams are required")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}

	return nil
}
