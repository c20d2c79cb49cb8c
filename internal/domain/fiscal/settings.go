package fiscal

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/comunidad/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Venezuelan fiscal registry number, e.g. J-12345678-9.
var rifPattern = regexp.MustCompile(`^[VEJPG]-?[0-9]{8}-?[0-9]$`)

// Settings holds the community's fiscal configuration.
// A single row exists; repositories load and save it as a singleton.
type Settings struct {
	shared.BaseAggregateRoot
	BusinessName      string
	RIF               string
	Address           string
	InvoicePrefix     string
	NextInvoiceNumber int64
	IVARate           decimal.Decimal
	LogoObjectKey     string
}

// DefaultSettings returns the initial fiscal configuration used when
// no row exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoicePrefix:     "FAC",
		NextInvoiceNumber: 1,
		IVARate:           decimal.NewFromFloat(0.16),
	}
}

// UpdateBusiness sets the business identification fields.
func (s *Settings) UpdateBusiness(name, rif, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}

	rif = strings.ToUpper(strings.TrimSpace(rif))
	if rif != "" && !rifPattern.MatchString(rif) {
		return shared.NewDomainError("INVALID_RIF", "RIF must look like J-12345678-9")
	}

	s.BusinessName = name
	s.RIF = rif
	s.Address = strings.TrimSpace(address)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetIVARate sets the tax rate as a fraction, e.g. 0.16 for 16%.
func (s *Settings) SetIVARate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewDomainError("INVALID_IVA_RATE", "IVA rate must be between 0 and 1")
	}

	s.IVARate = rate
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetInvoicePrefix sets the prefix used when formatting invoice numbers.
func (s *Settings) SetInvoicePrefix(prefix string) error {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return shared.NewDomainError("INVALID_INVOICE_PREFIX", "Invoice prefix cannot be empty")
	}
	if len(prefix) > 10 {
		return shared.NewDomainError("INVALID_INVOICE_PREFIX", "Invoice prefix cannot exceed 10 characters")
	}

	s.InvoicePrefix = prefix
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetLogo stores the object key of the uploaded logo.
func (s *Settings) SetLogo(objectKey string) {
	s.LogoObjectKey = objectKey
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// ConsumeInvoiceNumber returns the formatted next invoice number and
// advances the counter. Callers must persist the settings afterwards.
func (s *Settings) ConsumeInvoiceNumber() string {
	number := FormatInvoiceNumber(s.InvoicePrefix, s.NextInvoiceNumber)
	s.NextInvoiceNumber++
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return number
}

// FormatInvoiceNumber renders an invoice number as PREFIX-00000042.
func FormatInvoiceNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%08d", prefix, n)
}
