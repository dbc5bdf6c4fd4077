// Package phone normaliza teléfonos de clientes a E.164.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion región usada cuando el número no trae prefijo internacional.
const DefaultRegion = "MA"

// ErrInvalidPhone el número no se pudo interpretar como teléfono válido.
var ErrInvalidPhone = errors.New("teléfono inválido")

// NormalizeE164 interpreta input con la región dada (vacía = DefaultRegion) y lo devuelve en E.164.
func NormalizeE164(input, region string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalidPhone
	}
	if region == "" {
		region = DefaultRegion
	}
	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(number, phonenumbers.E164), nil
}
