package funeral

import (
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Client is a person enrolled in a funeral plan. Clients are tracked
// independently of residents; plan holders need not live in the community.
type Client struct {
	shared.BaseAggregateRoot
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Cedula    string     `json:"cedula"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	PlanID    uuid.UUID  `json:"plan_id"`
	JoinedAt  time.Time  `json:"joined_at"`
	CanceledAt *time.Time `json:"canceled_at"`
}

// NewClient enrolls a client in a plan
func NewClient(firstName, lastName, cedula, phone, address string, planID uuid.UUID, now time.Time) (*Client, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client names cannot be empty")
	}
	cedula = strings.ToUpper(strings.TrimSpace(cedula))
	if cedula == "" {
		return nil, shared.NewDomainError("INVALID_CEDULA", "Cedula cannot be empty")
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}

	normalizedPhone, err := valueobject.NewPhone(phone)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number is not valid")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		Cedula:            cedula,
		Phone:             normalizedPhone.String(),
		Address:           strings.TrimSpace(address),
		PlanID:            planID,
		JoinedAt:          now,
	}, nil
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Cancel ends the client's enrollment
func (c *Client) Cancel(now time.Time) error {
	if c.CanceledAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Client enrollment is already canceled")
	}
	c.CanceledAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()
	return nil
}

// SwitchPlan moves the client to a different plan
func (c *Client) SwitchPlan(planID uuid.UUID) error {
	if planID == uuid.Nil {
		return shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	if c.CanceledAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Canceled clients cannot switch plans")
	}
	c.PlanID = planID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
