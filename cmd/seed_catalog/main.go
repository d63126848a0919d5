// seed_catalog genera un script SQL para poblar el catálogo (tipos de producto,
// proveedores y productos) a partir de un export legado Catalogo.csv en ISO-8859-1
// separado por punto y coma: sku;nombre;precio;tipo;umbral;proveedor;correo.
//
// Uso: go run ./cmd/seed_catalog [ruta/Catalogo.csv]
// Por defecto busca Catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/003_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Umbral aplicado cuando la columna umbral viene vacía o ilegible.
const defaultThreshold = 10

type productRow struct {
	sku, nombre, precio, tipo, proveedor string
}

func main() {
	csvPath := "Catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export legado viene en ISO-8859-1 (tildes y eñes)
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 7

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) > 0 {
		records = records[1:] // encabezado
	}

	// Tipos y proveedores únicos; productos en el orden del archivo
	typeThresholds := make(map[string]int)
	supplierEmails := make(map[string]string)
	var products []productRow
	for _, rec := range records {
		sku := strings.TrimSpace(rec[0])
		nombre := strings.TrimSpace(rec[1])
		precio := strings.TrimSpace(rec[2])
		tipo := strings.TrimSpace(rec[3])
		umbral := strings.TrimSpace(rec[4])
		proveedor := strings.TrimSpace(rec[5])
		correo := strings.TrimSpace(rec[6])

		if sku == "" || nombre == "" || precio == "" {
			continue
		}
		price, err := decimal.NewFromString(precio)
		if err != nil || price.IsNegative() {
			fmt.Fprintf(os.Stderr, "Precio ilegible para %s: %q\n", sku, precio)
			continue
		}

		if tipo != "" {
			th := defaultThreshold
			if n, err := strconv.Atoi(umbral); err == nil && n >= 0 {
				th = n
			}
			typeThresholds[tipo] = th
		}
		if proveedor != "" {
			supplierEmails[proveedor] = correo
		}
		products = append(products, productRow{
			sku:       sku,
			nombre:    nombre,
			precio:    price.String(),
			tipo:      tipo,
			proveedor: proveedor,
		})
	}

	// Orden estable para que regenerar no cambie el diff
	var typeNames []string
	for name := range typeThresholds {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	var supplierNames []string
	for name := range supplierEmails {
		supplierNames = append(supplierNames, name)
	}
	sort.Strings(supplierNames)

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "003_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial: tipos de producto, proveedores y productos.\n")
	out.WriteString("-- Generado desde Catalogo.csv por cmd/seed_catalog\n\n")

	out.WriteString("-- 1. Tipos de producto con su umbral de stock bajo\n")
	out.WriteString("INSERT INTO product_types (name, low_stock_threshold) VALUES\n")
	for i, name := range typeNames {
		sep := ","
		if i == len(typeNames)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', %d)%s\n", escapeSQL(name), typeThresholds[name], sep)
	}
	out.WriteString("ON CONFLICT (name) DO UPDATE SET low_stock_threshold = EXCLUDED.low_stock_threshold;\n\n")

	out.WriteString("-- 2. Proveedores\n")
	out.WriteString("INSERT INTO suppliers (name, contact_email) VALUES\n")
	for i, name := range supplierNames {
		sep := ","
		if i == len(supplierNames)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', %s)%s\n", escapeSQL(name), sqlText(supplierEmails[name]), sep)
	}
	out.WriteString("ON CONFLICT (name) DO UPDATE SET contact_email = EXCLUDED.contact_email;\n\n")

	out.WriteString("-- 3. Productos (tipo y proveedor se resuelven por nombre)\n")
	for _, p := range products {
		fmt.Fprintf(out, "INSERT INTO products (name, sku, price, supplier_id, type_id)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', %s, %s, %s)\n",
			escapeSQL(p.nombre), escapeSQL(p.sku), p.precio,
			lookupSQL("suppliers", p.proveedor), lookupSQL("product_types", p.tipo))
		out.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, supplier_id = EXCLUDED.supplier_id, type_id = EXCLUDED.type_id;\n")
	}

	fmt.Printf("Generado %s: %d tipos, %d proveedores, %d productos\n",
		outPath, len(typeNames), len(supplierNames), len(products))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// sqlText literal de texto o NULL si viene vacío.
func sqlText(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

// lookupSQL subquery que resuelve el id por nombre, o NULL si no hay referencia.
func lookupSQL(table, name string) string {
	if name == "" {
		return "NULL"
	}
	return fmt.Sprintf("(SELECT id FROM %s WHERE name = '%s')", table, escapeSQL(name))
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
