package domain

// AccessGroupType scopes an access group to the whole organization or to one
// location.
type AccessGroupType string

const (
	AccessGroupOrganization AccessGroupType = "organization"
	AccessGroupLocation     AccessGroupType = "location"
)

func (t AccessGroupType) Valid() bool {
	return t == AccessGroupOrganization || t == AccessGroupLocation
}

type AccessGroup struct {
	ID          string
	Name        string
	Description string
	Type        AccessGroupType
	LocationID  string // set for location groups only
	ScanData    map[string]any
	Config      AccessGroupConfig
}

type AccessGroupConfig struct {
	Active         bool
	OpenToEveryone bool
}

// BindableAt reports whether the group may grant access at a point in
// locationID. Location groups only apply to their own location.
func (g AccessGroup) BindableAt(locationID string) bool {
	return g.Type != AccessGroupLocation || g.LocationID == locationID
}
