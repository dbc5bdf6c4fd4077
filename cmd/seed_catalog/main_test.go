package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogue_UTF8(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<catalogue>
  <produit nom="  Marbre   Carrara " prix="1 234,50" stock="42.5"/>
  <produit nom="Granit noir" type="Granit" unite="ML" prix="800" stock=""/>
  <produit nom="marbre carrara" prix="1" stock="1"/>
  <produit nom="" prix="1" stock="1"/>
  <produit nom="Travertin" prix="-5" stock="1"/>
</catalogue>`

	products, skipped, err := parseCatalogue(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Len(t, skipped, 3)

	granit, carrara := products[0], products[1]
	assert.Equal(t, "Granit noir", granit.Name)
	assert.Equal(t, "Granit", granit.Type)
	assert.Equal(t, "ML", granit.Unit)
	assert.True(t, granit.Stock.IsZero())

	assert.Equal(t, "Marbre Carrara", carrara.Name)
	assert.Equal(t, "Marbre", carrara.Type)
	assert.Equal(t, "M²", carrara.Unit)
	assert.Equal(t, "1234.5", carrara.Price.String())
	assert.Equal(t, "42.5", carrara.Stock.String())
}

func TestParseCatalogue_Latin1(t *testing.T) {
	// "Marbre Crème" con è = 0xE8 en ISO-8859-1
	raw := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><catalogue><produit nom=\"Marbre Cr\xe8me\" prix=\"10\" stock=\"1\"/></catalogue>"

	products, _, err := parseCatalogue(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Marbre Crème", products[0].Name)
}

func TestParseCatalogue_IDEstable(t *testing.T) {
	xml := `<catalogue><produit nom="Onyx" prix="1" stock="1"/></catalogue>`
	a, _, err := parseCatalogue(strings.NewReader(xml))
	require.NoError(t, err)
	b, _, err := parseCatalogue(strings.NewReader(strings.Replace(xml, "Onyx", "ONYX", 1)))
	require.NoError(t, err)

	assert.Equal(t, a[0].ID, b[0].ID)
}

func TestWriteSeed(t *testing.T) {
	products, _, err := parseCatalogue(strings.NewReader(`<catalogue><produit nom="L'Emperador" prix="99,9" stock="3"/></catalogue>`))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, writeSeed(&sb, products))
	sql := sb.String()

	assert.Contains(t, sql, "'L''Emperador'")
	assert.Contains(t, sql, "99.9, 3")
	assert.Contains(t, sql, "WHERE NOT EXISTS")
	assert.Contains(t, sql, "ON CONFLICT (id) DO NOTHING;")
}
