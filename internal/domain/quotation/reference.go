package quotation

import (
	"fmt"
	"time"
)

// FormatReference arma la referencia legible: AAAAMMDD + secuencia con 3 dígitos mínimo.
// Ej: 2025-03-07, 12 → "20250307012".
func FormatReference(date time.Time, seq int64) string {
	return fmt.Sprintf("%s%03d", date.Format("20060102"), seq)
}
