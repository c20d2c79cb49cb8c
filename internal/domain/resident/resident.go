package resident

import (
	"regexp"
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/billing"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/comunidad/backend/internal/domain/shared/valueobject"
)

// PaymentState represents a resident's standing in the monthly dues cycle
type PaymentState string

const (
	PaymentStatePending PaymentState = "pending" // Awaiting payment for the current cycle
	PaymentStatePaid    PaymentState = "paid"    // Current cycle's payment recorded
	PaymentStateOverdue PaymentState = "overdue" // Escalated by the manual sweep
	PaymentStateLate    PaymentState = "late"    // Escalated by the scheduled daily run
)

// IsValid checks if the state is a valid PaymentState
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStatePending, PaymentStatePaid, PaymentStateOverdue, PaymentStateLate:
		return true
	}
	return false
}

// String returns the string representation of PaymentState
func (s PaymentState) String() string {
	return string(s)
}

// IsDelinquent returns true for either overdue label. The two labels are
// written by different escalation paths but mean the same thing; both are
// kept so reports can tell the paths apart.
func (s PaymentState) IsDelinquent() bool {
	return s == PaymentStateOverdue || s == PaymentStateLate
}

// cedulaPattern accepts Venezuelan national IDs: optional V/E prefix,
// optional dash, 6 to 9 digits.
var cedulaPattern = regexp.MustCompile(`^[VE]?-?[0-9]{6,9}$`)

// Resident is the aggregate root for a dues-paying member of the community.
// Payments, access tokens and notification log entries all hang off it and
// are removed with it.
type Resident struct {
	shared.BaseAggregateRoot
	FirstName          string       `json:"first_name"`
	LastName           string       `json:"last_name"`
	Cedula             string       `json:"cedula"`
	RegistrationNumber string       `json:"registration_number"`
	Phone              string       `json:"phone"`
	Address            string       `json:"address"`
	PaymentState       PaymentState `json:"payment_state"`
	LastPaymentDate    *time.Time   `json:"last_payment_date"`
	NextPaymentDate    *time.Time   `json:"next_payment_date"`
}

// NewResident registers a resident. New residents start pending with their
// next payment due at the end of the registration month's cycle.
func NewResident(firstName, lastName, cedula, registrationNumber, phone, address string, now time.Time) (*Resident, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Last name cannot be empty")
	}

	cedula, err := NormalizeCedula(cedula)
	if err != nil {
		return nil, err
	}

	normalizedPhone, err := valueobject.NewPhone(phone)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number is not valid")
	}

	nextDue := billing.EndOfBillingCycle(billing.CurrentPeriod(now))
	r := &Resident{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		FirstName:          firstName,
		LastName:           lastName,
		Cedula:             cedula,
		RegistrationNumber: strings.TrimSpace(registrationNumber),
		Phone:              normalizedPhone.String(),
		Address:            strings.TrimSpace(address),
		PaymentState:       PaymentStatePending,
		NextPaymentDate:    &nextDue,
	}

	r.AddDomainEvent(NewResidentRegisteredEvent(r))

	return r, nil
}

// NormalizeCedula validates and canonicalizes a national ID
func NormalizeCedula(cedula string) (string, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(cedula), " ", ""))
	if cleaned == "" {
		return "", shared.NewDomainError("INVALID_CEDULA", "Cedula cannot be empty")
	}
	if !cedulaPattern.MatchString(cleaned) {
		return "", shared.NewDomainError("INVALID_CEDULA", "Cedula format is not valid")
	}
	return cleaned, nil
}

// FullName returns the resident's display name
func (r *Resident) FullName() string {
	return r.FirstName + " " + r.LastName
}

// HasPhone returns true when a WhatsApp-capable phone is on file
func (r *Resident) HasPhone() bool {
	return r.Phone != ""
}

// MarkPaid moves the resident to paid for the cycle that the payment
// covers. The next payment date advances to the end of the cycle after the
// paid period (December wraps into January). There is no automatic return
// to pending at the next month boundary; a new recorded payment is what
// starts the next cycle.
func (r *Resident) MarkPaid(paidPeriod billing.Period, paidAt time.Time) {
	next := billing.EndOfBillingCycle(paidPeriod.Next())

	r.PaymentState = PaymentStatePaid
	r.LastPaymentDate = &paidAt
	r.NextPaymentDate = &next
	r.UpdatedAt = paidAt
	r.IncrementVersion()

	r.AddDomainEvent(NewResidentPaidEvent(r, paidPeriod))
}

// MarkDelinquent escalates a pending resident past the grace period.
// The label records which escalation path ran. Escalating an already
// delinquent resident is a no-op.
func (r *Resident) MarkDelinquent(label PaymentState, now time.Time) error {
	if !label.IsDelinquent() {
		return shared.NewDomainError("INVALID_STATE", "Escalation label must be overdue or late")
	}
	if r.PaymentState.IsDelinquent() {
		return nil
	}
	if r.PaymentState != PaymentStatePending {
		return shared.NewDomainError("INVALID_STATE", "Only pending residents can be escalated")
	}

	r.PaymentState = label
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewResidentDelinquentEvent(r))

	return nil
}

// UpdateContact changes phone and address
func (r *Resident) UpdateContact(phone, address string) error {
	normalizedPhone, err := valueobject.NewPhone(phone)
	if err != nil {
		return shared.NewDomainError("INVALID_PHONE", "Phone number is not valid")
	}

	r.Phone = normalizedPhone.String()
	r.Address = strings.TrimSpace(address)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Rename changes the resident's names
func (r *Resident) Rename(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return shared.NewDomainError("INVALID_NAME", "Names cannot be empty")
	}

	r.FirstName = firstName
	r.LastName = lastName
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}
