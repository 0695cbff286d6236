package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"
)

// MemberKind discriminates the subject a member entry refers to.
type MemberKind string

const (
	MemberUser        MemberKind = "user"
	MemberRoblox      MemberKind = "roblox"
	MemberRobloxGroup MemberKind = "roblox-group"
	MemberCard        MemberKind = "card"
)

// MemberState is derived from the joined flag.
type MemberState string

const (
	MemberInvited MemberState = "invited"
	MemberActive  MemberState = "active"
)

// Subject is the identity a member entry grants rights to. Exactly one of
// UserSubject, RobloxSubject, RobloxGroupSubject or CardSubject.
type Subject interface {
	Kind() MemberKind
	isSubject()
}

// UserSubject is a platform user. Its member key is the user id.
type UserSubject struct {
	UserID string
}

// RobloxSubject is a Roblox account that has no platform user. Its member key
// is the decimal Roblox user id.
type RobloxSubject struct {
	UserID   int64
	Username string
}

// RobloxGroupSubject admits members of a Roblox group, optionally restricted to
// some rolesets. Keyed by a UUID.
type RobloxGroupSubject struct {
	GroupID   int64
	GroupName string
	Rolesets  []int64 // empty admits every roleset
}

// CardSubject is a set of physical card numbers. Keyed by a UUID.
type CardSubject struct {
	Name    string
	Numbers []string
}

func (UserSubject) Kind() MemberKind        { return MemberUser }
func (RobloxSubject) Kind() MemberKind      { return MemberRoblox }
func (RobloxGroupSubject) Kind() MemberKind { return MemberRobloxGroup }
func (CardSubject) Kind() MemberKind        { return MemberCard }

func (UserSubject) isSubject()        {}
func (RobloxSubject) isSubject()      {}
func (RobloxGroupSubject) isSubject() {}
func (CardSubject) isSubject()        {}

// AdmitsRoleset reports whether a group member with the given roleset matches.
func (g RobloxGroupSubject) AdmitsRoleset(roleset int64) bool {
	return len(g.Rolesets) == 0 || slices.Contains(g.Rolesets, roleset)
}

// MaxRobloxRank is the highest rank a Roblox group roleset can hold.
const MaxRobloxRank = 255

// AdmittedRolesets lists the rolesets the subject admits. A subject without
// rolesets admits every ranked member of the group, 1 through MaxRobloxRank.
func (g RobloxGroupSubject) AdmittedRolesets() []int64 {
	if len(g.Rolesets) > 0 {
		return slices.Clone(g.Rolesets)
	}
	out := make([]int64, 0, MaxRobloxRank)
	for rank := int64(1); rank <= MaxRobloxRank; rank++ {
		out = append(out, rank)
	}
	return out
}

// RobloxMemberKey is the member key used for a Roblox user.
func RobloxMemberKey(robloxUserID int64) string {
	return strconv.FormatInt(robloxUserID, 10)
}

type Member struct {
	Key          string
	Subject      Subject
	Role         Role
	AccessGroups []string
	ScanData     map[string]any
	Joined       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m Member) State() MemberState {
	if m.Joined {
		return MemberActive
	}
	return MemberInvited
}

func (m Member) Kind() MemberKind {
	if m.Subject == nil {
		return ""
	}
	return m.Subject.Kind()
}

// InAnyGroup reports whether the member holds one of groups.
func (m Member) InAnyGroup(groups map[string]AccessGroup) (AccessGroup, bool) {
	for _, id := range m.AccessGroups {
		if g, ok := groups[id]; ok {
			return g, true
		}
	}
	return AccessGroup{}, false
}

// SubjectRecord is the flat storage and wire form of a Subject.
type SubjectRecord struct {
	Type           MemberKind `json:"type" bson:"type"`
	UserID         string     `json:"userId,omitempty" bson:"userId,omitempty"`
	RobloxUserID   int64      `json:"robloxUserId,omitempty" bson:"robloxUserId,omitempty"`
	RobloxUsername string     `json:"robloxUsername,omitempty" bson:"robloxUsername,omitempty"`
	GroupID        int64      `json:"groupId,omitempty" bson:"groupId,omitempty"`
	GroupName      string     `json:"groupName,omitempty" bson:"groupName,omitempty"`
	Rolesets       []int64    `json:"rolesets,omitempty" bson:"rolesets,omitempty"`
	CardName       string     `json:"cardName,omitempty" bson:"cardName,omitempty"`
	CardNumbers    []string   `json:"cardNumbers,omitempty" bson:"cardNumbers,omitempty"`
}

// ErrInvalidSubject is returned when a SubjectRecord cannot be decoded.
var ErrInvalidSubject = errors.New("invalid member subject")

// EncodeSubject flattens s into its record form.
func EncodeSubject(s Subject) SubjectRecord {
	switch v := s.(type) {
	case UserSubject:
		return SubjectRecord{Type: MemberUser, UserID: v.UserID}
	case RobloxSubject:
		return SubjectRecord{Type: MemberRoblox, RobloxUserID: v.UserID, RobloxUsername: v.Username}
	case RobloxGroupSubject:
		return SubjectRecord{Type: MemberRobloxGroup, GroupID: v.GroupID, GroupName: v.GroupName, Rolesets: v.Rolesets}
	case CardSubject:
		return SubjectRecord{Type: MemberCard, CardName: v.Name, CardNumbers: v.Numbers}
	default:
		return SubjectRecord{}
	}
}

// DecodeSubject is the single discriminated parser for stored subjects.
func DecodeSubject(r SubjectRecord) (Subject, error) {
	switch r.Type {
	case MemberUser:
		if r.UserID == "" {
			return nil, fmt.Errorf("%w: user subject without user id", ErrInvalidSubject)
		}
		return UserSubject{UserID: r.UserID}, nil
	case MemberRoblox:
		if r.RobloxUserID <= 0 {
			return nil, fmt.Errorf("%w: roblox subject without roblox id", ErrInvalidSubject)
		}
		return RobloxSubject{UserID: r.RobloxUserID, Username: r.RobloxUsername}, nil
	case MemberRobloxGroup:
		if r.GroupID <= 0 {
			return nil, fmt.Errorf("%w: roblox group subject without group id", ErrInvalidSubject)
		}
		return RobloxGroupSubject{GroupID: r.GroupID, GroupName: r.GroupName, Rolesets: r.Rolesets}, nil
	case MemberCard:
		return CardSubject{Name: r.CardName, Numbers: r.CardNumbers}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidSubject, r.Type)
	}
}
