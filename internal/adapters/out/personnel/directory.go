// Package personnel provides adapters for the external personnel directory.
// The directory owns personnel data; these adapters only read the active,
// delivery-capable accounts the assignment flow needs.
package personnel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"handover/internal/core/ports"
)

// HTTPDirectory queries the personnel service over its REST API.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDirectory creates a directory gateway for the given personnel
// service base URL. The client should carry a timeout; lookups are bounded,
// best-effort calls.
func NewHTTPDirectory(baseURL string, client *http.Client) *HTTPDirectory {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDirectory{
		baseURL: baseURL,
		client:  client,
	}
}

// personDTO mirrors the personnel service's account representation.
type personDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ListActiveByCapability fetches the active accounts holding the capability.
func (d *HTTPDirectory) ListActiveByCapability(ctx context.Context, capability string) ([]ports.Person, error) {
	endpoint := fmt.Sprintf("%s/api/v1/accounts?status=active&capability=%s",
		d.baseURL, url.QueryEscape(capability))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("personnel directory: build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("personnel directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("personnel directory: unexpected status %d", resp.StatusCode)
	}

	var dtos []personDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("personnel directory: decode response: %w", err)
	}

	people := make([]ports.Person, 0, len(dtos))
	for _, dto := range dtos {
		people = append(people, ports.Person{
			ID:    dto.ID,
			Name:  dto.Name,
			Phone: dto.Phone,
		})
	}

	return people, nil
}

// StaticDirectory serves a fixed roster. Used for local development and tests
// where no personnel service is reachable.
type StaticDirectory struct {
	people []ports.Person
}

// NewStaticDirectory creates a directory over a fixed set of delivery-capable
// accounts.
func NewStaticDirectory(people []ports.Person) *StaticDirectory {
	return &StaticDirectory{people: append([]ports.Person(nil), people...)}
}

// ListActiveByCapability returns the fixed roster regardless of capability.
func (d *StaticDirectory) ListActiveByCapability(_ context.Context, _ string) ([]ports.Person, error) {
	return append([]ports.Person(nil), d.people...), nil
}
