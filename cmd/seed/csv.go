package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Employee-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var requiredColumns = []string{"name", "position", "department", "salary"}

// row fila leída del CSV, con su número de línea para reportar rechazos.
type row struct {
	Line  int
	Input dto.CreateEmployeeRequest
	Err   error
}

// readEmployees lee un CSV con cabecera name,position,department,salary (cualquier orden).
// Con latin1 el archivo se decodifica desde ISO-8859-1 (exportaciones de hojas de cálculo viejas).
func readEmployees(r io.Reader, latin1 bool) ([]row, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q en la cabecera", col)
		}
	}

	var rows []row
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rows = append(rows, row{Line: line, Err: err})
			continue
		}
		rows = append(rows, parseRow(line, rec, index))
	}
	return rows, nil
}

func parseRow(line int, rec []string, index map[string]int) row {
	get := func(col string) string {
		i := index[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	out := row{Line: line, Input: dto.CreateEmployeeRequest{
		Name:       get("name"),
		Position:   get("position"),
		Department: get("department"),
	}}
	if s := get("salary"); s != "" {
		salary, err := decimal.NewFromString(s)
		if err != nil {
			out.Err = fmt.Errorf("salary %q no es numérico", s)
			return out
		}
		out.Input.Salary = &salary
	}
	return out
}
