// internal/domain/plan/entity.go
package plan

import "voiceai-web/internal/domain/user"

// Plan is a purchasable subscription plan as returned by GET /plans.
type Plan struct {
	ID          string            `json:"_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Currency    string            `json:"currency"`
	Duration    string            `json:"duration"` // monthly, yearly, lifetime
	Features    user.PlanFeatures `json:"features"`
	IsActive    bool              `json:"isActive"`
	SortOrder   int               `json:"sortOrder"`
}
