// Package transport defines the request/response DTOs for the catalog API.
package transport

import "intake_gateway/internal/catalog/repository"

// OptionResponse is one selectable service option.
type OptionResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

// CatalogueResponse is the full service-options payload, grouped the way the
// registration form renders them.
type CatalogueResponse struct {
	ServiceTypes  []OptionResponse `json:"service_types"`
	ServiceAddons []OptionResponse `json:"service_addons"`
}

// FromCatalogue maps the domain catalogue to its response shape.
func FromCatalogue(cat *repository.Catalogue) CatalogueResponse {
	resp := CatalogueResponse{
		ServiceTypes:  make([]OptionResponse, 0, len(cat.ServiceTypes)),
		ServiceAddons: make([]OptionResponse, 0, len(cat.ServiceAddons)),
	}
	for _, o := range cat.ServiceTypes {
		resp.ServiceTypes = append(resp.ServiceTypes, OptionResponse(o))
	}
	for _, o := range cat.ServiceAddons {
		resp.ServiceAddons = append(resp.ServiceAddons, OptionResponse(o))
	}
	return resp
}
