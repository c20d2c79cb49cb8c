package fiscal

import (
	"time"

	"github.com/comunidad/backend/internal/domain/fiscal"
	"github.com/shopspring/decimal"
)

// UpdateSettingsRequest contains the fiscal configuration fields that can
// be changed. Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	BusinessName  *string          `json:"business_name"`
	RIF           *string          `json:"rif"`
	Address       *string          `json:"address"`
	InvoicePrefix *string          `json:"invoice_prefix"`
	IVARate       *decimal.Decimal `json:"iva_rate"`
}

// SettingsDTO represents the fiscal configuration for the API
type SettingsDTO struct {
	BusinessName      string          `json:"business_name"`
	RIF               string          `json:"rif"`
	Address           string          `json:"address"`
	InvoicePrefix     string          `json:"invoice_prefix"`
	NextInvoiceNumber string          `json:"next_invoice_number"`
	IVARate           decimal.Decimal `json:"iva_rate"`
	HasLogo           bool            `json:"has_logo"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToSettingsDTO converts domain settings to their API representation.
// The next invoice number is shown formatted but not consumed.
func ToSettingsDTO(s *fiscal.Settings) SettingsDTO {
	return SettingsDTO{
		BusinessName:      s.BusinessName,
		RIF:               s.RIF,
		Address:           s.Address,
		InvoicePrefix:     s.InvoicePrefix,
		NextInvoiceNumber: fiscal.FormatInvoiceNumber(s.InvoicePrefix, s.NextInvoiceNumber),
		IVARate:           s.IVARate,
		HasLogo:           s.LogoObjectKey != "",
		UpdatedAt:         s.UpdatedAt,
	}
}

// LogoUploadResult carries a presigned upload URL for the logo
type LogoUploadResult struct {
	UploadURL string    `json:"upload_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LogoDownloadResult carries a presigned download URL for the logo
type LogoDownloadResult struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
