package models

// ItineraryRequest is the body of POST /api/generate-itinerary.
type ItineraryRequest struct {
	City      string   `json:"city"`
	Interests []string `json:"interests"`
}

// ItineraryResult is the successful answer of the itinerary endpoint.
type ItineraryResult struct {
	City      string   `json:"city"`
	Interests []string `json:"interests"`
	Itinerary string   `json:"itinerary"`
}

// ErrorResponse is the body of every non-2xx answer of the itinerary endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
