// internal/domain/subscription/entity.go
package subscription

import "voiceai-web/internal/domain/plan"

// Status of a subscription as reported by the backend.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
	StatusInactive  Status = "inactive"
)

// Subscription is the current subscription record from
// GET /plans/subscription/details. A 404 from that endpoint means the user
// has none.
type Subscription struct {
	ID              string    `json:"_id"`
	Status          Status    `json:"status"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	PaymentMethod   string    `json:"paymentMethod"` // stripe, paypal, manual
	PaymentAmount   float64   `json:"paymentAmount"`
	PaymentCurrency string    `json:"paymentCurrency"`
	PaymentProofURL string    `json:"paymentProofUrl,omitempty"`
	Plan            plan.Plan `json:"plan"`
	DaysRemaining   int       `json:"daysRemaining"`
	IsExpired       bool      `json:"isExpired"`
	IsActive        bool      `json:"isActive"`
}

// BankDetails for manual payment.
type BankDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	RoutingNumber string `json:"routingNumber"`
	SwiftCode     string `json:"swiftCode"`
}

// PaymentInstructions accompany a newly created manual subscription.
type PaymentInstructions struct {
	Amount         float64     `json:"amount"`
	Currency       string      `json:"currency"`
	BankDetails    BankDetails `json:"bankDetails"`
	Instructions   []string    `json:"instructions"`
	SubscriptionID string      `json:"subscriptionId"`
}

// SubscribeResponse is the payload of POST /plans/subscribe.
type SubscribeResponse struct {
	Subscription        Subscription         `json:"subscription"`
	PaymentInstructions *PaymentInstructions `json:"paymentInstructions,omitempty"`
}
