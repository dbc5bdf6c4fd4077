// seed_catalog genera un script SQL idempotente para poblar el catálogo de productos
// a partir de un export XML (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogue.xml] [salida.sql]
// Por defecto lee catalogue.xml del directorio actual y escribe seeds/products.sql en la raíz del módulo.
//
// Formato esperado:
//
//	<catalogue>
//	  <produit nom="Marbre Carrara" type="Marbre" unite="M²" prix="350,00" stock="42.5"/>
//	</catalogue>
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/luxymarbre/devis-api/internal/domain/entity"
)

// catalogNamespace espacio de nombres de los UUID v5 del catálogo: el mismo nombre siempre da el mismo id.
var catalogNamespace = uuid.MustParse("6f1d4c52-3b0e-4a8f-9d57-2c1e8b7a9f30")

type catalogue struct {
	Produits []produit `xml:"produit"`
}

type produit struct {
	Nom   string `xml:"nom,attr"`
	Type  string `xml:"type,attr"`
	Unite string `xml:"unite,attr"`
	Prix  string `xml:"prix,attr"`
	Stock string `xml:"stock,attr"`
}

type seedProduct struct {
	ID    string
	Name  string
	Type  string
	Unit  string
	Price decimal.Decimal
	Stock decimal.Decimal
}

func main() {
	xmlPath := "catalogue.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "seeds", "products.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	products, skipped, err := parseCatalogue(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d descartados\n", outPath, len(products), len(skipped))
	for _, s := range skipped {
		fmt.Printf("  descartado: %s\n", s)
	}
}

// parseCatalogue decodifica el XML y normaliza cada producto. Los productos sin nombre
// o con precio/stock ilegible o negativo se descartan (se devuelven en skipped).
// Nombres repetidos (sin distinguir mayúsculas) conservan la primera aparición.
func parseCatalogue(r io.Reader) (products []seedProduct, skipped []string, err error) {
	var c catalogue
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]struct{}, len(c.Produits))
	for i, p := range c.Produits {
		name := strings.Join(strings.Fields(p.Nom), " ")
		if name == "" {
			skipped = append(skipped, fmt.Sprintf("#%d: sin nombre", i+1))
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			skipped = append(skipped, fmt.Sprintf("%s: duplicado", name))
			continue
		}
		price, err := parseAmount(p.Prix)
		if err != nil || price.IsNegative() {
			skipped = append(skipped, fmt.Sprintf("%s: precio inválido %q", name, p.Prix))
			continue
		}
		stock, err := parseAmount(p.Stock)
		if err != nil || stock.IsNegative() {
			skipped = append(skipped, fmt.Sprintf("%s: stock inválido %q", name, p.Stock))
			continue
		}
		seen[key] = struct{}{}
		products = append(products, seedProduct{
			ID:    uuid.NewSHA1(catalogNamespace, []byte(key)).String(),
			Name:  name,
			Type:  orDefault(p.Type, entity.DefaultProductType),
			Unit:  orDefault(p.Unite, entity.DefaultProductUnit),
			Price: price,
			Stock: stock,
		})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, skipped, nil
}

// parseAmount acepta "1 234,50", "1234.50" y vacío (= 0).
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f':
			return -1
		case ',':
			return '.'
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// writeSeed escribe un INSERT por producto; reejecutar el script no duplica ni pisa datos.
func writeSeed(w io.Writer, products []seedProduct) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog. Reejecutable: los productos existentes no se modifican.\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "INSERT INTO products (id, name, type, unit, price, stock)\n")
		fmt.Fprintf(&b, "SELECT '%s', '%s', '%s', '%s', %s, %s\n",
			p.ID, escapeSQL(p.Name), escapeSQL(p.Type), escapeSQL(p.Unit), p.Price.String(), p.Stock.String())
		fmt.Fprintf(&b, "WHERE NOT EXISTS (SELECT 1 FROM products WHERE lower(name) = lower('%s'))\n", escapeSQL(p.Name))
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
