package resident

import (
	"time"

	"github.com/comunidad/backend/internal/domain/resident"
	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreateResidentRequest contains the input for registering a resident
type CreateResidentRequest struct {
	FirstName          string `json:"first_name" binding:"required"`
	LastName           string `json:"last_name" binding:"required"`
	Cedula             string `json:"cedula" binding:"required"`
	RegistrationNumber string `json:"registration_number"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
}

// UpdateResidentRequest contains the input for updating a resident.
// Nil fields are left unchanged.
type UpdateResidentRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// ResidentDTO represents a resident for the API
type ResidentDTO struct {
	ID                 uuid.UUID  `json:"id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	FullName           string     `json:"full_name"`
	Cedula             string     `json:"cedula"`
	RegistrationNumber string     `json:"registration_number"`
	Phone              string     `json:"phone"`
	Address            string     `json:"address"`
	PaymentState       string     `json:"payment_state"`
	LastPaymentDate    *time.Time `json:"last_payment_date,omitempty"`
	NextPaymentDate    *time.Time `json:"next_payment_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ToResidentDTO converts a domain resident to its API representation
func ToResidentDTO(r *resident.Resident) ResidentDTO {
	return ResidentDTO{
		ID:                 r.ID,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		FullName:           r.FullName(),
		Cedula:             r.Cedula,
		RegistrationNumber: r.RegistrationNumber,
		Phone:              r.Phone,
		Address:            r.Address,
		PaymentState:       r.PaymentState.String(),
		LastPaymentDate:    r.LastPaymentDate,
		NextPaymentDate:    r.NextPaymentDate,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ResidentListResult is a paginated resident listing
type ResidentListResult = shared.Paginated[ResidentDTO]

// CreateTokenRequest contains the input for issuing an access token
type CreateTokenRequest struct {
	ResidentID uuid.UUID `json:"resident_id" binding:"required"`
	Name       string    `json:"name" binding:"required"`
}

// TokenDTO represents an access token for the API
type TokenDTO struct {
	ID              uuid.UUID  `json:"id"`
	ResidentID      uuid.UUID  `json:"resident_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	PaymentState    string     `json:"payment_state"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
	NextPaymentDate *time.Time `json:"next_payment_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToTokenDTO converts a domain token to its API representation
func ToTokenDTO(t *resident.Token) TokenDTO {
	return TokenDTO{
		ID:              t.ID,
		ResidentID:      t.ResidentID,
		Name:            t.Name,
		Status:          string(t.Status),
		PaymentState:    t.PaymentState.String(),
		LastPaymentDate: t.LastPaymentDate,
		NextPaymentDate: t.NextPaymentDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
