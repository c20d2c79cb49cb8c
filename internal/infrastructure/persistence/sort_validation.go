package persistence

import "strings"

// sortSpec validates caller-supplied ordering against a column
// allowlist before it is concatenated into an ORDER BY clause.
type sortSpec struct {
	allowed  map[string]bool
	fallback string
}

// Clause returns "<column> <ASC|DESC>". Unknown columns fall back to
// the default; anything but an explicit "asc" sorts descending.
func (s sortSpec) Clause(orderBy, orderDir string) string {
	column := strings.TrimSpace(orderBy)
	if !s.allowed[column] {
		column = s.fallback
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}

var residentSort = sortSpec{
	fallback: "last_name",
	allowed: map[string]bool{
		"id":                true,
		"created_at":        true,
		"updated_at":        true,
		"first_name":        true,
		"last_name":         true,
		"cedula":            true,
		"payment_state":     true,
		"next_payment_date": true,
	},
}

var paymentSort = sortSpec{
	fallback: "created_at",
	allowed: map[string]bool{
		"id":           true,
		"created_at":   true,
		"updated_at":   true,
		"payment_date": true,
		"due_date":     true,
		"year":         true,
		"month":        true,
		"status":       true,
	},
}
