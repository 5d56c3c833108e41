// seed genera un script SQL de datos de demostración: catálogo base de
// categorías y bienes de ayuda, usuarios de prueba y, opcionalmente, los
// albergues leídos de un CSV (name,address,capacity por línea).
//
// Uso: go run ./cmd/seed [ruta/albergues.csv]
// Escribe: deploy/seed_demo.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Catálogo base: categoría -> bienes (nombre, unidad, costo unitario).
var catalogue = []struct {
	category    string
	description string
	goods       [][3]string
}{
	{"Alimentos", "Alimentos no perecederos y raciones", [][3]string{
		{"Mercado familiar", "kit", "85000"},
		{"Ración de emergencia 24h", "unidad", "18000"},
		{"Agua potable 6L", "paquete", "9000"},
	}},
	{"Aseo", "Elementos de higiene personal", [][3]string{
		{"Kit de aseo adulto", "kit", "32000"},
		{"Kit de aseo infantil", "kit", "28000"},
	}},
	{"Abrigo", "Frazadas, colchonetas y carpas", [][3]string{
		{"Frazada térmica", "unidad", "25000"},
		{"Colchoneta", "unidad", "48000"},
		{"Carpa familiar", "unidad", "390000"},
	}},
	{"Salud", "Insumos médicos básicos", [][3]string{
		{"Botiquín primeros auxilios", "kit", "65000"},
	}},
}

var users = [][3]string{
	{"Administrador Demo", "admin@socorro.local", "admin"},
	{"Coordinadora Demo", "coordinadora@socorro.local", "coordinador"},
	{"Voluntario Demo", "voluntario@socorro.local", "voluntario"},
}

func main() {
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "deploy", "seed_demo.sql")
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

	out.WriteString("-- Datos de demostración Socorro API\n")
	out.WriteString("-- Generado por cmd/seed\n\n")

	out.WriteString("-- 1. Usuarios\n")
	for _, u := range users {
		fmt.Fprintf(out,
			"INSERT INTO users (name, email, role, active, created_at)\nVALUES ('%s', '%s', '%s', true, now())\nON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role;\n",
			escapeSQL(u[0]), u[1], u[2])
	}
	out.WriteString("\n-- 2. Categorías y bienes de ayuda\n")
	goodsTotal := 0
	for _, cat := range catalogue {
		fmt.Fprintf(out,
			"INSERT INTO categories (name, description, active, created_at, updated_at)\nVALUES ('%s', '%s', true, now(), now())\nON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description;\n",
			escapeSQL(cat.category), escapeSQL(cat.description))
		for _, g := range cat.goods {
			fmt.Fprintf(out,
				"INSERT INTO relief_goods (category_id, name, unit, unit_cost, active, created_at, updated_at)\nSELECT id, '%s', '%s', %s, true, now(), now() FROM categories WHERE name = '%s'\nON CONFLICT (name) DO UPDATE SET unit_cost = EXCLUDED.unit_cost;\n",
				escapeSQL(g[0]), g[1], g[2], escapeSQL(cat.category))
			goodsTotal++
		}
	}

	sheltersTotal := 0
	if len(os.Args) > 1 {
		shelters, err := readShelters(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV de albergues: %v\n", err)
			os.Exit(1)
		}
		out.WriteString("\n-- 3. Albergues\n")
		for _, s := range shelters {
			fmt.Fprintf(out,
				"INSERT INTO shelters (name, address, capacity, active, created_at, updated_at)\nVALUES ('%s', '%s', %d, true, now(), now())\nON CONFLICT DO NOTHING;\n",
				escapeSQL(s.name), escapeSQL(s.address), s.capacity)
		}
		sheltersTotal = len(shelters)
	}

	fmt.Printf("Generado %s: %d usuarios, %d categorías, %d bienes, %d albergues\n",
		outPath, len(users), len(catalogue), goodsTotal, sheltersTotal)
}

type shelterRow struct {
	name, address string
	capacity      int
}

// readShelters lee name,address,capacity. Líneas incompletas se ignoran.
func readShelters(path string) ([]shelterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var out []shelterRow
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			continue
		}
		out = append(out, shelterRow{
			name:     strings.TrimSpace(rec[0]),
			address:  strings.TrimSpace(rec[1]),
			capacity: capacity,
		})
	}
	return out, nil
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
