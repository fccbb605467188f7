package entities

import (
	"errors"
	"time"
)

// Payment domain errors.
var (
	ErrPaymentNotFound = errors.New("payment transaction not found")
	ErrInvalidPlan     = errors.New("invalid subscription plan")
)

// Subscription plan identifiers.
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// Payment statuses reported by the provider.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentExpired = "expired"
)

// Payment is one checkout transaction. Activation happens exactly once,
// guarded by the Activated flag, whichever of status polling or the
// provider webhook observes the paid state first.
type Payment struct {
	ID            string
	SessionID     string
	UserID        string
	Plan          string
	Amount        int64
	Currency      string
	PaymentStatus string
	Activated     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Plan describes one subscription offering.
type Plan struct {
	ID       string
	Name     string
	Price    float64
	AmountUS int64
	Features []string
}

// Plans returns the subscription catalog in display order.
func Plans() []Plan {
	return []Plan{
		{
			ID:       PlanFree,
			Name:     "Free",
			Price:    0,
			AmountUS: 0,
			Features: []string{"1 year notepad retention", "Unlimited entries", "Web access"},
		},
		{
			ID:       PlanPro,
			Name:     "Pro",
			Price:    4.99,
			AmountUS: 499,
			Features: []string{"Notepads never expire", "Priority support", "AI summaries", "Export to any format"},
		},
		{
			ID:       PlanBusiness,
			Name:     "Business",
			Price:    14.99,
			AmountUS: 1499,
			Features: []string{"Everything in Pro", "Team sharing", "Webhook integrations", "Analytics dashboard"},
		},
	}
}

// PlanByID looks up a paid plan; the free plan is not purchasable.
func PlanByID(id string) (Plan, error) {
	for _, p := range Plans() {
		if p.ID == id && p.ID != PlanFree {
			return p, nil
		}
	}
	return Plan{}, ErrInvalidPlan
}
