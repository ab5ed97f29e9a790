// internal/domain/user/entity.go
package user

// Role of an account as issued by the backend.
type Role string

const (
	RoleUser         Role = "user"
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleFinanceAdmin Role = "finance_admin"
	RoleSuperAdmin   Role = "super_admin"
)

// Valid reports whether the role is one of the known backend roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager, RoleFinanceAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// PlanFeatures mirrors the feature flags and numeric limits of a plan
// embedded in a user's subscription summary.
type PlanFeatures struct {
	CharactersPerMonth int      `json:"charactersPerMonth"`
	VoicesAvailable    int      `json:"voicesAvailable"`
	AudioFormats       []string `json:"audioFormats"`
	APIAccess          bool     `json:"apiAccess"`
	PrioritySupport    bool     `json:"prioritySupport"`
	CommercialUse      bool     `json:"commercialUse"`
	StorageLimitMB     int      `json:"storageLimitMB"`
}

// PlanSummary is the plan reference embedded in a subscription summary.
type PlanSummary struct {
	ID       string       `json:"_id"`
	Name     string       `json:"name"`
	Features PlanFeatures `json:"features"`
}

// SubscriptionSummary is the optional subscription block the backend embeds
// into the user profile.
type SubscriptionSummary struct {
	ID            string      `json:"_id"`
	Status        string      `json:"status"` // pending, active, cancelled, expired, inactive
	Plan          PlanSummary `json:"plan"`
	StartDate     string      `json:"startDate"`
	EndDate       string      `json:"endDate"`
	DaysRemaining int         `json:"daysRemaining"`
}

// User is the server-issued profile. It is never synthesized locally beyond
// merging backend responses.
type User struct {
	ID           string               `json:"_id"`
	FirstName    string               `json:"firstName"`
	LastName     string               `json:"lastName"`
	Email        string               `json:"email"`
	Phone        string               `json:"phone"`
	Role         Role                 `json:"role"`
	Subscription *SubscriptionSummary `json:"subscription,omitempty"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
