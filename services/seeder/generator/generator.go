package generator

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"friender/pkg/models"
)

var UsersCSVHeaders = []string{
	"first_name",
	"last_name",
	"email",
	"image_url",
	"bio",
	"location",
	"radius",
	"password",
}

type Row struct {
	FirstName string
	LastName  string
	Email     string
	ImageURL  string
	Bio       string
	Location  int
	Radius    int
	Password  string
}

var (
	firstNames = []string{"Ava", "Ben", "Chloe", "Dan", "Ella", "Finn", "Grace", "Henry", "Isla", "Jack", "Kira", "Leo", "Maya", "Noah", "Olive", "Paul", "Quinn", "Ruby", "Sam", "Tara"}
	lastNames  = []string{"Adams", "Baker", "Chen", "Diaz", "Evans", "Fox", "Garcia", "Hill", "Ito", "Jones", "Kim", "Lopez", "Miller", "Nguyen", "Owens", "Patel", "Reed", "Smith", "Turner", "Wong"}
	bios       = []string{
		"Coffee first, questions later.",
		"Looking for a hiking buddy.",
		"Board games and bad puns.",
		"New in town, show me around.",
		"Will trade book recommendations for dumplings.",
		"Weekend baker, weekday coder.",
	}
)

// imageURLs mirrors the randomuser.me portrait set.
func imageURLs() []string {
	var urls []string
	for _, kind := range []struct {
		name  string
		count int
	}{{"lego", 10}, {"men", 100}, {"women", 100}} {
		for i := 0; i < kind.count; i++ {
			urls = append(urls, fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", kind.name, i))
		}
	}
	return urls
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// Generate builds n users located at codes drawn from the given list.
// Emails are unique within one run.
func Generate(rng *rand.Rand, n int, codes []int, password string) ([]Row, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("no postal codes to draw from")
	}
	urls := imageURLs()

	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)
		rows = append(rows, Row{
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			ImageURL:  pick(rng, urls),
			Bio:       pick(rng, bios),
			Location:  pick(rng, codes),
			Radius:    models.DefaultRadius,
			Password:  password,
		})
	}
	return rows, nil
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(UsersCSVHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.FirstName,
			r.LastName,
			r.Email,
			r.ImageURL,
			r.Bio,
			strconv.Itoa(r.Location),
			strconv.Itoa(r.Radius),
			r.Password,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV accepts columns in any order as long as the header names them.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, h := range UsersCSVHeaders {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("missing column %q", h)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		location, err := strconv.Atoi(rec[col["location"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad location %q", line, rec[col["location"]])
		}
		radius, err := strconv.Atoi(rec[col["radius"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad radius %q", line, rec[col["radius"]])
		}

		rows = append(rows, Row{
			FirstName: rec[col["first_name"]],
			LastName:  rec[col["last_name"]],
			Email:     rec[col["email"]],
			ImageURL:  rec[col["image_url"]],
			Bio:       rec[col["bio"]],
			Location:  location,
			Radius:    radius,
			Password:  rec[col["password"]],
		})
	}
	return rows, nil
}
