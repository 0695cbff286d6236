/*
Package xcssdk provides a client SDK for the XCS access-control API.

# Overview

The package is organized around three types:

  - SDKClient: public operations (health, JWKS, bootstrap, registration,
    login, invite previews, public profiles)
  - Session: operations on behalf of a signed-in user
  - Device: operations authenticated with an organization API key (scans
    and axesys sync)

Create an SDKClient and log in to obtain a Session:

	client := xcssdk.NewSDKClient("https://xcs.example.com")

	session, err := client.AuthenticateWithPassword(ctx, "alice", "password")
	if err != nil {
		return err
	}

	org, err := session.CreateOrganization(ctx, xcssdk.CreateOrganizationRequest{Name: "Acme"})

Access point hardware uses a Device:

	device := client.NewDevice(os.Getenv("XCS_API_KEY"))
	decision, err := device.Scan(ctx, accessPointID, xcssdk.ScanRequest{RobloxUserID: 100})
	if err == nil && decision.Granted {
		// open the door
	}

# Sessions

Session tokens are short lived JWTs and are not refreshed. Once a token has
expired every Session call returns ErrSessionExpired without contacting the
server; log in again to continue. Sessions are safe for concurrent use.

# Session Organization

  - session.go: account, notifications, invite redemption
  - session_org.go: organizations, members, invite codes, API keys
  - session_location.go: access groups, locations, access points

# Error Handling

Non-2xx responses are returned as *APIError carrying the HTTP status and the
error code from the response body:

	_, err := session.GetOrganization(ctx, id)
	var apiErr *xcssdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == xcssdk.ErrorCodeNotFound {
		// gone
	}

The codes map one to one onto HTTP statuses: invalid_request (400),
unauthorized (401), forbidden (403), not_found (404), conflict (409),
rate_limited (429) and server_error (500).

# Roles

Roles are ordinals: 0 guest, 1 member, 2 manager, 3 owner. The owner role
cannot be granted; ownership is fixed to the creator of an organization.
*/
package xcssdk
