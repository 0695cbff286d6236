package xcssdk

import (
	"context"
	"net/http"
	"strconv"
)

func orgPath(orgID string) string { return "/api/v1/organizations/" + orgID }

func (s *Session) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	var o Organization
	if err := s.call(ctx, http.MethodPost, "/api/v1/organizations", req, &o, http.StatusCreated); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrganizations returns the organizations the caller is an active member of.
func (s *Session) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var out []Organization
	if err := s.call(ctx, http.MethodGet, "/api/v1/organizations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) GetOrganization(ctx context.Context, orgID string) (*Organization, error) {
	var o Organization
	if err := s.call(ctx, http.MethodGet, orgPath(orgID), nil, &o, http.StatusOK); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Session) UpdateOrganization(ctx context.Context, orgID string, req UpdateOrganizationRequest) (*Organization, error) {
	var o Organization
	if err := s.call(ctx, http.MethodPatch, orgPath(orgID), req, &o, http.StatusOK); err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteOrganization removes the organization with all its locations,
// access points and invitations. Owner only.
func (s *Session) DeleteOrganization(ctx context.Context, orgID string) error {
	return s.call(ctx, http.MethodDelete, orgPath(orgID), nil, nil, http.StatusNoContent)
}

// ListLogs returns up to limit log entries, newest first. A zero limit uses
// the server default.
func (s *Session) ListLogs(ctx context.Context, orgID string, limit int) ([]LogEntry, error) {
	path := orgPath(orgID) + "/logs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []LogEntry
	if err := s.call(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// LeaveOrganization removes the caller's own membership.
func (s *Session) LeaveOrganization(ctx context.Context, orgID string) error {
	return s.call(ctx, http.MethodPost, orgPath(orgID)+"/leave", nil, nil, http.StatusNoContent)
}

// ============================================================================
// Members
// ============================================================================

func (s *Session) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	var out []Member
	if err := s.call(ctx, http.MethodGet, orgPath(orgID)+"/members", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// InviteMember invites a platform user. They join once they accept the
// notification.
func (s *Session) InviteMember(ctx context.Context, orgID string, req InviteMemberRequest) (*Member, error) {
	return s.addMember(ctx, orgID, "/members/invitations", req)
}

func (s *Session) AddRobloxMember(ctx context.Context, orgID string, req AddRobloxMemberRequest) (*Member, error) {
	return s.addMember(ctx, orgID, "/members/roblox", req)
}

func (s *Session) AddRobloxGroupMember(ctx context.Context, orgID string, req AddRobloxGroupMemberRequest) (*Member, error) {
	return s.addMember(ctx, orgID, "/members/roblox-groups", req)
}

func (s *Session) AddCardMember(ctx context.Context, orgID string, req AddCardMemberRequest) (*Member, error) {
	return s.addMember(ctx, orgID, "/members/cards", req)
}

func (s *Session) addMember(ctx context.Context, orgID, path string, req any) (*Member, error) {
	var m Member
	if err := s.call(ctx, http.MethodPost, orgPath(orgID)+path, req, &m, http.StatusCreated); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Session) UpdateMember(ctx context.Context, orgID, key string, req UpdateMemberRequest) (*Member, error) {
	var m Member
	if err := s.call(ctx, http.MethodPatch, orgPath(orgID)+"/members/"+key, req, &m, http.StatusOK); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Session) RemoveMember(ctx context.Context, orgID, key string) error {
	return s.call(ctx, http.MethodDelete, orgPath(orgID)+"/members/"+key, nil, nil, http.StatusNoContent)
}

// ============================================================================
// Invite codes
// ============================================================================

func (s *Session) CreateInviteCode(ctx context.Context, orgID string, req CreateInviteCodeRequest) (*CreateInviteCodeResponse, error) {
	var out CreateInviteCodeResponse
	if err := s.call(ctx, http.MethodPost, orgPath(orgID)+"/invite-codes", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListInviteCodes(ctx context.Context, orgID string) ([]InviteCode, error) {
	var out []InviteCode
	if err := s.call(ctx, http.MethodGet, orgPath(orgID)+"/invite-codes", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) RevokeInviteCode(ctx context.Context, orgID, inviteID string) error {
	return s.call(ctx, http.MethodDelete, orgPath(orgID)+"/invite-codes/"+inviteID, nil, nil, http.StatusNoContent)
}

// ============================================================================
// API keys
// ============================================================================

// CreateAPIKey returns the plaintext key once. Owner only.
func (s *Session) CreateAPIKey(ctx context.Context, orgID, name string) (*CreateAPIKeyResponse, error) {
	var out CreateAPIKeyResponse
	if err := s.call(ctx, http.MethodPost, orgPath(orgID)+"/api-keys", CreateAPIKeyRequest{Name: name}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListAPIKeys(ctx context.Context, orgID string) ([]APIKey, error) {
	var out []APIKey
	if err := s.call(ctx, http.MethodGet, orgPath(orgID)+"/api-keys", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) RevokeAPIKey(ctx context.Context, orgID, keyID string) error {
	return s.call(ctx, http.MethodDelete, orgPath(orgID)+"/api-keys/"+keyID, nil, nil, http.StatusNoContent)
}
