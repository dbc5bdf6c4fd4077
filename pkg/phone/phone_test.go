package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxymarbre/devis-api/pkg/phone"
)

func TestNormalizeE164(t *testing.T) {
	got, err := phone.NormalizeE164("0661 33 66 17", "MA")
	require.NoError(t, err)
	assert.Equal(t, "+212661336617", got)

	got, err = phone.NormalizeE164("+33 6 12 34 56 78", "")
	require.NoError(t, err)
	assert.Equal(t, "+33612345678", got)
}

func TestNormalizeE164_Invalido(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12"} {
		_, err := phone.NormalizeE164(in, "MA")
		assert.ErrorIs(t, err, phone.ErrInvalidPhone, in)
	}
}
