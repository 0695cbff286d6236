package domain

import "time"

type NotificationType string

const NotificationOrganizationInvitation NotificationType = "organization-invitation"

type Notification struct {
	ID             string
	RecipientID    string
	SenderID       string
	Type           NotificationType
	Read           bool
	OrganizationID string
	MemberKey      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
