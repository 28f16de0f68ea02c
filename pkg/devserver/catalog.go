// Package devserver is an in-memory catalog api for local development and
// integration tests. It answers the same endpoints as the production catalog.
package devserver

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/matst80/slask-storefront/pkg/types"
)

type Catalog struct {
	products []types.Product
}

func NewCatalog(products []types.Product) *Catalog {
	return &Catalog{products: products}
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// LoadFile reads a JSON array or a ";" separated CSV file, picked by extension.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var products []types.Product
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		products, err = ReadCSV(f)
	default:
		products, err = ReadJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewCatalog(products), nil
}

func ReadJSON(r io.Reader) ([]types.Product, error) {
	var products []types.Product
	if err := jsoncompat.NewDecoder(bufio.NewReader(r)).Decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}

var numericColumns = map[string]bool{
	"price_before_discount_inr": true,
	"price_after_discount_inr":  true,
	"discount_pct":              true,
}

// ReadCSV reads products from a ";" separated file whose header row names
// the product fields. Rows that do not decode are skipped.
func ReadCSV(r io.Reader) ([]types.Product, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = ';'
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return []types.Product{}, nil
	}
	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	products := make([]types.Product, 0, len(records)-1)
	for _, record := range records[1:] {
		p, err := productFromRecord(header, record)
		if err == nil {
			products = append(products, p)
		}
	}
	return products, nil
}

func productFromRecord(header, record []string) (types.Product, error) {
	fields := make(map[string]any, len(header))
	for i, name := range header {
		if i >= len(record) || name == "" {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}
		switch {
		case numericColumns[name]:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return types.Product{}, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = n
		case name == "in_stock":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return types.Product{}, fmt.Errorf("%s: %w", name, err)
			}
			fields[name] = b
		case name == "occasion":
			parts := []string{}
			for _, o := range strings.Split(value, ",") {
				if o = strings.TrimSpace(o); o != "" {
					parts = append(parts, o)
				}
			}
			fields[name] = parts
		default:
			fields[name] = value
		}
	}
	data, err := jsoncompat.Marshal(fields)
	if err != nil {
		return types.Product{}, err
	}
	var p types.Product
	err = jsoncompat.Unmarshal(data, &p)
	return p, err
}
