package models

import "github.com/lxo898/reservas-inacap/internal/domain"

// Request modelos

// SaveSpaceRequest alta o edición de un espacio
type SaveSpaceRequest struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity"`
	IsActive *bool  `json:"isActive,omitempty"` // nil mantiene/activa por defecto
}

// SaveResourceRequest alta o edición de un recurso
type SaveResourceRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	SpaceID  *int64 `json:"spaceId,omitempty"`
}

// Response modelos

// SpaceResponse datos de un espacio reservable
type SpaceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"isActive"`
}

// SpaceListResponse listado de espacios
type SpaceListResponse struct {
	Spaces []*SpaceResponse `json:"spaces"`
	Total  int              `json:"total"`
}

// ResourceResponse datos de un recurso de apoyo
type ResourceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	SpaceID  *int64 `json:"spaceId,omitempty"`
}

// ResourceListResponse listado de recursos
type ResourceListResponse struct {
	Resources []*ResourceResponse `json:"resources"`
	Total     int                 `json:"total"`
}

// FromDomainSpace convierte el espacio de dominio a response
func FromDomainSpace(s *domain.Space) *SpaceResponse {
	return &SpaceResponse{
		ID:       s.ID,
		Name:     s.Name,
		Location: s.Location,
		Capacity: s.Capacity,
		IsActive: s.IsActive,
	}
}

// FromDomainSpaceList convierte una lista de espacios a response
func FromDomainSpaceList(list []*domain.Space) *SpaceListResponse {
	out := make([]*SpaceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromDomainSpace(s))
	}
	return &SpaceListResponse{Spaces: out, Total: len(out)}
}

// FromDomainResourceList convierte una lista de recursos a response
func FromDomainResourceList(list []*domain.Resource) *ResourceListResponse {
	out := make([]*ResourceResponse, 0, len(list))
	for _, r := range list {
		out = append(out, &ResourceResponse{
			ID:       r.ID,
			Name:     r.Name,
			Quantity: r.Quantity,
			SpaceID:  r.SpaceID,
		})
	}
	return &ResourceListResponse{Resources: out, Total: len(out)}
}
