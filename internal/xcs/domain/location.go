package domain

import "time"

type Location struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	Enabled        bool
	Tags           []string
	Roblox         RobloxPlace
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RobloxPlace binds a location to a Roblox experience. Once set it cannot
// change.
type RobloxPlace struct {
	PlaceID    int64
	UniverseID int64
}

func (p RobloxPlace) Bound() bool { return p.PlaceID != 0 }
