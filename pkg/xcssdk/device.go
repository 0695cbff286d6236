package xcssdk

import (
	"context"
	"net/http"
)

// Device authenticates with an organization API key. It is what access
// point hardware and game servers use.
type Device struct {
	client *SDKClient
	apiKey string
}

// NewDevice creates a Device for key ("xcs_<id>_<secret>").
func (c *SDKClient) NewDevice(apiKey string) *Device {
	return &Device{client: c, apiKey: apiKey}
}

func (d *Device) headers() map[string]string {
	return map[string]string{"X-API-Key": d.apiKey}
}

// Scan asks whether the identity may pass the access point. A denied scan
// is not an error.
func (d *Device) Scan(ctx context.Context, apID string, req ScanRequest) (*ScanResponse, error) {
	resp, err := d.client.doRequest(ctx, http.MethodPost, "/api/v1/access-points/"+apID+"/scan", req, d.headers())
	if err != nil {
		return nil, err
	}

	var out ScanResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// LegacySync fetches the axesys document for every access point of a location.
func (d *Device) LegacySync(ctx context.Context, locationID string) (LegacySyncResponse, error) {
	resp, err := d.client.doRequest(ctx, http.MethodGet, "/api/v1/axesys/sync/"+locationID, nil, d.headers())
	if err != nil {
		return nil, err
	}

	var out LegacySyncResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
