package layouts

import "encoding/json"

// create layout request payload
type CreateLayoutRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Document json.RawMessage `json:"document,omitempty"` // optional, empty canvas when absent
}

// update layout request payload; either field may be omitted
type UpdateLayoutRequest struct {
	Name     string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Document json.RawMessage `json:"document,omitempty"`
}

// list filters bound from query parameters
type ListFilters struct {
	Page      int  `form:"page" binding:"omitempty,min=1"`
	Limit     int  `form:"limit" binding:"omitempty,min=1,max=100"`
	Published bool `form:"published"`
}
