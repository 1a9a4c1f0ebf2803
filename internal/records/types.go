package records

import "bmi-tracker/internal/domain"

// CreateRequest is the JSON body for POST /api/records. Pointers distinguish
// an omitted field from an explicit zero.
type CreateRequest struct {
	Weight *float64 `json:"weight"`
	Height *float64 `json:"height"`
}

// ListResponse is the JSON response for GET /api/records.
type ListResponse struct {
	Data []domain.Record `json:"data"`
}

// CreateResponse is the JSON response for POST /api/records.
type CreateResponse struct {
	Message string        `json:"message"`
	Data    domain.Record `json:"data"`
}

// DeleteResponse is the JSON response for DELETE /api/records/{id}.
type DeleteResponse struct {
	Message string `json:"message"`
	Changes int64  `json:"changes"`
}

const (
	messageCreated = "success"
	messageDeleted = "deleted"
)
