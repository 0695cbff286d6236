package domain

// ScanIdentity is who presented themselves at an access point. Any subset
// of the fields may be set.
type ScanIdentity struct {
	UserID       string
	RobloxUserID int64
	RobloxGroups map[int64]int64 // group id -> roleset id
	CardNumber   string
}

func (s ScanIdentity) Empty() bool {
	return s.UserID == "" && s.RobloxUserID == 0 && len(s.RobloxGroups) == 0 && s.CardNumber == ""
}

// Decision is the outcome of evaluating a ScanIdentity at an access point.
type Decision struct {
	Granted       bool
	Reason        DecisionReason
	MemberKey     string
	AccessGroupID string
	ScanData      map[string]any
}

type DecisionReason string

const (
	ReasonLocationDisabled    DecisionReason = "location-disabled"
	ReasonAccessPointInactive DecisionReason = "access-point-inactive"
	ReasonAlwaysAllowedUser   DecisionReason = "always-allowed-user"
	ReasonAlwaysAllowedCard   DecisionReason = "always-allowed-card"
	ReasonOpenToEveryone      DecisionReason = "open-to-everyone"
	ReasonAccessGroup         DecisionReason = "access-group"
	ReasonNoMatch             DecisionReason = "no-match"
)
