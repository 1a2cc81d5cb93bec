// importitems genera un script SQL para poblar el inventario de un usuario
// a partir de un CSV exportado (nombre;categoria;cantidad;precio;descripcion).
// Los exports viejos vienen en ISO-8859-1; se decodifican a UTF-8.
//
// Uso: go run ./cmd/importitems <user_id> [ruta/items.csv]
// Por defecto busca items.csv en el directorio actual.
// Escribe: seed_items.sql en el directorio actual.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type itemRow struct {
	name        string
	category    string
	quantity    int64
	price       decimal.Decimal
	description string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: importitems <user_id> [items.csv]")
		os.Exit(1)
	}
	userID := os.Args[1]
	csvPath := "items.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports de la app anterior vienen en ISO-8859-1
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var items []itemRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue // cabecera
		}
		if len(rec) < 4 {
			fmt.Fprintf(os.Stderr, "fila %d: columnas insuficientes, omitida\n", i+1)
			continue
		}
		qty, err := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
		if err != nil || qty < 0 {
			fmt.Fprintf(os.Stderr, "fila %d: cantidad inválida %q, omitida\n", i+1, rec[2])
			continue
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil || price.IsNegative() {
			fmt.Fprintf(os.Stderr, "fila %d: precio inválido %q, omitida\n", i+1, rec[3])
			continue
		}
		row := itemRow{
			name:     strings.TrimSpace(rec[0]),
			category: strings.TrimSpace(rec[1]),
			quantity: qty,
			price:    price,
		}
		if len(rec) > 4 {
			row.description = strings.TrimSpace(rec[4])
		}
		if row.name == "" {
			fmt.Fprintf(os.Stderr, "fila %d: nombre vacío, omitida\n", i+1)
			continue
		}
		items = append(items, row)
	}

	out, err := os.Create("seed_items.sql")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	out.WriteString("-- Inventario importado desde CSV\n")
	fmt.Fprintf(out, "-- Usuario: %s\n\n", userID)

	// Un INSERT por artículo más su entrada de stock inicial, igual que
	// hace la API al crear: el libro queda consistente con la cantidad.
	for _, it := range items {
		itemID := uuid.NewString()
		fmt.Fprintf(out,
			"INSERT INTO inventory_items (id, user_id, name, category, quantity, price, description, created_at)\n"+
				"VALUES ('%s', '%s', '%s', '%s', %d, %s, '%s', '%s');\n",
			itemID, escapeSQL(userID), escapeSQL(it.name), escapeSQL(it.category),
			it.quantity, it.price.StringFixed(2), escapeSQL(it.description), now)
		if it.quantity > 0 {
			fmt.Fprintf(out,
				"INSERT INTO stock_entries (id, user_id, item_id, quantity_added, note, added_at)\n"+
					"VALUES ('%s', '%s', '%s', %d, 'stock inicial (import CSV)', '%s');\n",
				uuid.NewString(), escapeSQL(userID), itemID, it.quantity, now)
		}
		out.WriteString("\n")
	}

	fmt.Printf("Generado seed_items.sql: %d artículos\n", len(items))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
