package dto

import "pastebridge/internal/domain/entities"

// PlanResponse is one subscription offering.
type PlanResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// PlansResponse is the plan catalog.
type PlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// NewPlansResponse maps the plan catalog to its API shape.
func NewPlansResponse(plans []entities.Plan) *PlansResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanResponse{ID: p.ID, Name: p.Name, Price: p.Price, Features: p.Features})
	}
	return &PlansResponse{Plans: out}
}

// CheckoutRequest opens a checkout session for a paid plan.
type CheckoutRequest struct {
	Plan      string `json:"plan"`
	OriginURL string `json:"origin_url"`
}

// CheckoutResponse points the client at the provider's payment page.
type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CheckoutStatusResponse is the provider's view of a session.
type CheckoutStatusResponse struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}
