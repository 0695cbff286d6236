package xcssdk

import (
	"context"
	"net/http"
)

// ============================================================================
// Access groups
// ============================================================================

func (s *Session) ListAccessGroups(ctx context.Context, orgID string) ([]AccessGroup, error) {
	var out []AccessGroup
	if err := s.call(ctx, http.MethodGet, orgPath(orgID)+"/access-groups", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateAccessGroup(ctx context.Context, orgID string, req AccessGroupRequest) (*AccessGroup, error) {
	var g AccessGroup
	if err := s.call(ctx, http.MethodPost, orgPath(orgID)+"/access-groups", req, &g, http.StatusCreated); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Session) UpdateAccessGroup(ctx context.Context, orgID, groupID string, req AccessGroupRequest) (*AccessGroup, error) {
	var g AccessGroup
	if err := s.call(ctx, http.MethodPut, orgPath(orgID)+"/access-groups/"+groupID, req, &g, http.StatusOK); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteAccessGroup also drops the group from every member and access point.
func (s *Session) DeleteAccessGroup(ctx context.Context, orgID, groupID string) error {
	return s.call(ctx, http.MethodDelete, orgPath(orgID)+"/access-groups/"+groupID, nil, nil, http.StatusNoContent)
}

// ============================================================================
// Locations
// ============================================================================

func (s *Session) ListLocations(ctx context.Context, orgID string) ([]Location, error) {
	var out []Location
	if err := s.call(ctx, http.MethodGet, orgPath(orgID)+"/locations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateLocation(ctx context.Context, orgID string, req LocationRequest) (*Location, error) {
	var l Location
	if err := s.call(ctx, http.MethodPost, orgPath(orgID)+"/locations", req, &l, http.StatusCreated); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Session) GetLocation(ctx context.Context, locationID string) (*Location, error) {
	var l Location
	if err := s.call(ctx, http.MethodGet, "/api/v1/locations/"+locationID, nil, &l, http.StatusOK); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Session) UpdateLocation(ctx context.Context, locationID string, req LocationRequest) (*Location, error) {
	var l Location
	if err := s.call(ctx, http.MethodPut, "/api/v1/locations/"+locationID, req, &l, http.StatusOK); err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLocation removes the location, its access points and its location
// scoped access groups.
func (s *Session) DeleteLocation(ctx context.Context, locationID string) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/locations/"+locationID, nil, nil, http.StatusNoContent)
}

// ============================================================================
// Access points
// ============================================================================

func (s *Session) ListAccessPoints(ctx context.Context, locationID string) ([]AccessPoint, error) {
	var out []AccessPoint
	if err := s.call(ctx, http.MethodGet, "/api/v1/locations/"+locationID+"/access-points", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) CreateAccessPoint(ctx context.Context, locationID string, req AccessPointRequest) (*AccessPoint, error) {
	var ap AccessPoint
	if err := s.call(ctx, http.MethodPost, "/api/v1/locations/"+locationID+"/access-points", req, &ap, http.StatusCreated); err != nil {
		return nil, err
	}
	return &ap, nil
}

func (s *Session) GetAccessPoint(ctx context.Context, apID string) (*AccessPoint, error) {
	var ap AccessPoint
	if err := s.call(ctx, http.MethodGet, "/api/v1/access-points/"+apID, nil, &ap, http.StatusOK); err != nil {
		return nil, err
	}
	return &ap, nil
}

func (s *Session) UpdateAccessPoint(ctx context.Context, apID string, req AccessPointRequest) (*AccessPoint, error) {
	var ap AccessPoint
	if err := s.call(ctx, http.MethodPut, "/api/v1/access-points/"+apID, req, &ap, http.StatusOK); err != nil {
		return nil, err
	}
	return &ap, nil
}

func (s *Session) DeleteAccessPoint(ctx context.Context, apID string) error {
	return s.call(ctx, http.MethodDelete, "/api/v1/access-points/"+apID, nil, nil, http.StatusNoContent)
}
