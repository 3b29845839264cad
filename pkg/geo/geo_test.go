package geo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	assert.Same(t, table, Default())

	for _, code := range []int{10001, 10002, 90001} {
		assert.True(t, table.Has(code), "missing %d", code)
	}
	assert.False(t, table.Has(99999))

	codes := table.Codes()
	assert.IsIncreasing(t, codes)
}

func TestDistance(t *testing.T) {
	table := Default()

	tests := []struct {
		name     string
		a, b     int
		min, max float64
	}{
		{"same code", 10001, 10001, 0, 0},
		{"manhattan neighbours", 10001, 10002, 1, 3},
		{"coast to coast", 10001, 90001, 2400, 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := table.Distance(tt.a, tt.b)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, d, tt.min)
			assert.LessOrEqual(t, d, tt.max)

			back, err := table.Distance(tt.b, tt.a)
			require.NoError(t, err)
			assert.InDelta(t, d, back, 1e-9)
		})
	}
}

func TestDistance_UnknownLocation(t *testing.T) {
	table := Default()

	_, err := table.Distance(10001, 12345)
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = table.Distance(12345, 10001)
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = table.Distance(12345, 12345)
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		table, err := Parse(strings.NewReader("zip,lat,lon\n20001,38.9,-77.0\n10001,40.75,-73.99\n"))
		require.NoError(t, err)
		assert.Equal(t, []int{10001, 20001}, table.Codes())

		p, err := table.Coordinates(20001)
		require.NoError(t, err)
		assert.Equal(t, Point{Lat: 38.9, Lon: -77.0}, p)
	})

	bad := []string{
		"",
		"zip,lat,lon\nabc,1,2\n",
		"zip,lat,lon\n10001,north,2\n",
		"zip,lat,lon\n10001,1,west\n",
		"zip,lat,lon\n10001,1\n",
	}
	for _, in := range bad {
		_, err := Parse(strings.NewReader(in))
		assert.Error(t, err, "input %q", in)
	}
}

const geoNamesSample = "US\t94103\tSan Francisco\tCalifornia\tCA\tSan Francisco\t075\t\t\t37.7725\t-122.4147\t4\n" +
	"US\t77001\tHouston\tTexas\tTX\tHarris\t201\t\t\t29.8131\t-95.3098\t4\n" +
	"US\t96960\tMajuro\tMarshall Islands\tMH\t\t\t\t\t7.0897\t171.3803\t\n" +
	"US\tAPO\tMilitary\t\t\t\t\t\t\t0\t0\t\n"

func TestParseGeoNames(t *testing.T) {
	table, err := ParseGeoNames(strings.NewReader(geoNamesSample))
	require.NoError(t, err)
	assert.Equal(t, []int{77001, 94103, 96960}, table.Codes())
	assert.Equal(t, 3, table.Len())

	d, err := table.Distance(94103, 77001)
	require.NoError(t, err)
	assert.InDelta(t, 1640, d, 40)

	_, err = ParseGeoNames(strings.NewReader("US\t94103\tSan Francisco\n"))
	assert.Error(t, err)
	_, err = ParseGeoNames(strings.NewReader("US\t94103\ta\tb\tc\td\te\tf\tg\tnorth\t1\t4\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), table)

	dir := t.TempDir()

	// GeoNames dump is detected by its tabs
	dump := filepath.Join(dir, "US.txt")
	require.NoError(t, os.WriteFile(dump, []byte(geoNamesSample), 0o600))
	table, err = Load(dump)
	require.NoError(t, err)
	assert.True(t, table.Has(94103))
	assert.False(t, table.Has(10001))

	csvPath := filepath.Join(dir, "zips.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("zip,lat,lon\n30301,33.84,-84.47\n"), 0o600))
	table, err = Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []int{30301}, table.Codes())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestHaversine(t *testing.T) {
	p := Point{Lat: 0, Lon: 0}
	q := Point{Lat: 0, Lon: 180}
	// half the circumference
	assert.InDelta(t, EarthRadiusMiles*3.141592653589793, Haversine(p, q), 1e-6)
	assert.Zero(t, Haversine(p, p))
}
