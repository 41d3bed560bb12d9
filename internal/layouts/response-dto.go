package layouts

import (
	"encoding/json"
	"time"
)

// represents a layout in API responses
type LayoutResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	OwnerID   string          `json:"owner_id"`
	Version   int             `json:"version"`
	Published bool            `json:"published"`
	SeatCount int             `json:"seat_count"`
	Document  json.RawMessage `json:"document,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// listing entry without the document body
type LayoutSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	Published bool      `json:"published"`
	SeatCount int       `json:"seat_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginatedLayouts struct {
	Layouts    []LayoutSummary `json:"layouts"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func toResponse(rec *LayoutRecord, includeDocument bool) *LayoutResponse {
	resp := &LayoutResponse{
		ID:        rec.ID.String(),
		Name:      rec.Name,
		OwnerID:   rec.OwnerID.String(),
		Version:   rec.Version,
		Published: rec.Published,
		SeatCount: rec.SeatCount,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if includeDocument {
		resp.Document = json.RawMessage(rec.Document)
	}
	return resp
}

func toSummary(rec LayoutRecord) LayoutSummary {
	return LayoutSummary{
		ID:        rec.ID.String(),
		Name:      rec.Name,
		Version:   rec.Version,
		Published: rec.Published,
		SeatCount: rec.SeatCount,
		UpdatedAt: rec.UpdatedAt,
	}
}
