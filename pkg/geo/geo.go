// Package geo resolves US postal codes to coordinates and measures the
// great-circle distance between them in miles.
package geo

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// zipcodes.csv is a sample of the US table for tests and local runs.
// Deployments point GEO_POSTAL_FILE at the full GeoNames dump.
//
//go:embed zipcodes.csv
var zipcodesCSV []byte

// GeoNames postal dump columns (tab separated, no header).
const (
	geoNamesPostalCol = 1
	geoNamesLatCol    = 9
	geoNamesLonCol    = 10
)

const EarthRadiusMiles = 3958.8

var ErrUnknownLocation = errors.New("unknown location")

type Point struct {
	Lat float64
	Lon float64
}

// Calculator is the distance source the match engine depends on.
type Calculator interface {
	Distance(a, b int) (float64, error)
}

// Table is read-only after construction and safe for concurrent use.
type Table struct {
	points map[int]Point
	codes  []int
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table, parsed on first use.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(bytes.NewReader(zipcodesCSV))
		if err != nil {
			panic(fmt.Sprintf("geo: embedded zipcode table is invalid: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load returns the embedded table when path is empty, otherwise the file at
// path: either a GeoNames postal dump (e.g. US.txt) or a "zip,lat,lon" CSV.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open postal table: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read postal table: %w", err)
	}
	if line, _, _ := strings.Cut(string(head), "\n"); strings.Contains(line, "\t") {
		return ParseGeoNames(br)
	}
	return Parse(br)
}

// ParseGeoNames reads the GeoNames postal code dump (country, postal code,
// place, admin names and codes, latitude, longitude, accuracy). Rows with a
// non-numeric postal code are skipped.
func ParseGeoNames(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	t := &Table{points: make(map[int]Point)}
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) <= geoNamesLonCol {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, geoNamesLonCol+1, len(rec))
		}

		code, err := strconv.Atoi(rec[geoNamesPostalCol])
		if err != nil {
			continue
		}
		if err := t.add(line, code, rec[geoNamesLatCol], rec[geoNamesLonCol]); err != nil {
			return nil, err
		}
	}
	sort.Ints(t.codes)
	return t, nil
}

// Parse reads "zip,latitude,longitude[,...]" rows. The first row is a header.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{points: make(map[int]Point)}
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 fields, got %d", line, len(rec))
		}

		code, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad postal code %q", line, rec[0])
		}
		if err := t.add(line, code, rec[1], rec[2]); err != nil {
			return nil, err
		}
	}
	sort.Ints(t.codes)
	return t, nil
}

func (t *Table) add(line, code int, rawLat, rawLon string) error {
	lat, err := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if err != nil {
		return fmt.Errorf("line %d: bad latitude %q", line, rawLat)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	if err != nil {
		return fmt.Errorf("line %d: bad longitude %q", line, rawLon)
	}
	if _, dup := t.points[code]; !dup {
		t.codes = append(t.codes, code)
	}
	t.points[code] = Point{Lat: lat, Lon: lon}
	return nil
}

func (t *Table) Len() int {
	return len(t.codes)
}

func (t *Table) Has(code int) bool {
	_, ok := t.points[code]
	return ok
}

func (t *Table) Coordinates(code int) (Point, error) {
	p, ok := t.points[code]
	if !ok {
		return Point{}, fmt.Errorf("%w: %d", ErrUnknownLocation, code)
	}
	return p, nil
}

// Codes returns every known postal code in ascending order.
func (t *Table) Codes() []int {
	out := make([]int, len(t.codes))
	copy(out, t.codes)
	return out
}

func (t *Table) Distance(a, b int) (float64, error) {
	pa, err := t.Coordinates(a)
	if err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}
	pb, err := t.Coordinates(b)
	if err != nil {
		return 0, err
	}
	return Haversine(pa, pb), nil
}

func Haversine(p, q Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := q.Lat * math.Pi / 180
	dLat := (q.Lat - p.Lat) * math.Pi / 180
	dLon := (q.Lon - p.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}
