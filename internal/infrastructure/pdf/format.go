package pdf

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const currency = "DH"

var (
	printer = message.NewPrinter(language.French)
	// CLDR usa espacios finos no separables como separador de miles; helvetica no los trae.
	spaces = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2212", "-")
)

// formatFixed formatea d con escala fija al estilo francés: 1234.5 → "1 234,50".
func formatFixed(d decimal.Decimal, scale int) string {
	f, _ := d.Round(int32(scale)).Float64()
	return spaces.Replace(printer.Sprint(number.Decimal(f, number.Scale(scale))))
}

// formatAmount formatea un importe en dírhams: "1 234,50 DH".
func formatAmount(d decimal.Decimal) string {
	return formatFixed(d, 2) + " " + currency
}

// formatNumber imprime una medida sin ceros de relleno con coma decimal: 1.20 → "1,2".
func formatNumber(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}
