package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationStatusPending   = "pending"
	QuotationStatusValidated = "validated"
	QuotationStatusRejected  = "rejected"
)

// Tipos de cotización.
const (
	QuotationTypeClient   = "client"
	QuotationTypeSupplier = "supplier"
)

// Alias heredados del frontend original (francés).
var (
	statusAliases = map[string]string{
		"pending":    QuotationStatusPending,
		"en attente": QuotationStatusPending,
		"validated":  QuotationStatusValidated,
		"validé":     QuotationStatusValidated,
		"valide":     QuotationStatusValidated,
		"rejected":   QuotationStatusRejected,
		"rejeté":     QuotationStatusRejected,
		"rejete":     QuotationStatusRejected,
	}
	typeAliases = map[string]string{
		"client":      QuotationTypeClient,
		"supplier":    QuotationTypeSupplier,
		"fournisseur": QuotationTypeSupplier,
	}
)

// NormalizeQuotationStatus devuelve el estado canónico o false si no es válido.
func NormalizeQuotationStatus(s string) (string, bool) {
	v, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// NormalizeQuotationType devuelve el tipo canónico; vacío equivale a client.
func NormalizeQuotationType(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return QuotationTypeClient, true
	}
	v, ok := typeAliases[s]
	return v, ok
}

// QuotationLine es una línea valorizada, propiedad exclusiva de su cotización.
// UnitPrice es la foto del precio del producto al momento de cotizar; Surface y TotalPrice
// se derivan siempre de Length, Width, Quantity y UnitPrice.
type QuotationLine struct {
	ProductID   string
	ProductName string // resuelto al leer (populate); no se persiste en la línea
	Length      decimal.Decimal
	Width       decimal.Decimal
	Quantity    decimal.Decimal
	Surface     decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// Quotation es la raíz del agregado de cotización.
type Quotation struct {
	ID             string
	Reference      string
	ClientName     string
	ClientPhone    string
	Type           string
	Lines          []QuotationLine
	TotalAmount    decimal.Decimal
	Status         string
	StockDebitedAt *time.Time // se fija una única vez, al descontar stock en la validación
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Recalculate recompone TotalAmount como la suma de los totales de línea.
func (q *Quotation) Recalculate() {
	total := decimal.Zero
	for _, l := range q.Lines {
		total = total.Add(l.TotalPrice)
	}
	q.TotalAmount = total
}

// IsValidated indica si la cotización ya fue validada.
func (q *Quotation) IsValidated() bool {
	return q.Status == QuotationStatusValidated
}

// StockDebited indica si el stock ya se descontó para esta cotización.
func (q *Quotation) StockDebited() bool {
	return q.StockDebitedAt != nil
}

// CanDelete: solo se borran cotizaciones pendientes o rechazadas.
func (q *Quotation) CanDelete() bool {
	return q.Status == QuotationStatusPending || q.Status == QuotationStatusRejected
}
