package generator

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"friender/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateAndRoundTrip(t *testing.T) {
	codes := []int{10001, 10002, 90001}
	rows, err := Generate(rand.New(rand.NewSource(1)), 25, codes, "password")
	require.NoError(t, err)
	require.Len(t, rows, 25)

	emails := map[string]bool{}
	for _, r := range rows {
		assert.Contains(t, codes, r.Location)
		assert.Equal(t, models.DefaultRadius, r.Radius)
		assert.False(t, emails[r.Email], "duplicate email %s", r.Email)
		emails[r.Email] = true
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(UsersCSVHeaders, ",")+"\n"))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, back)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := Generate(rand.New(rand.NewSource(7)), 5, []int{10001, 90001}, "pw")
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewSource(7)), 5, []int{10001, 90001}, "pw")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = Generate(rand.New(rand.NewSource(7)), 5, nil, "pw")
	assert.Error(t, err)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("first_name,last_name\nA,B\n"))
	assert.ErrorContains(t, err, "missing column")

	header := strings.Join(UsersCSVHeaders, ",")
	_, err = ReadCSV(strings.NewReader(header + "\nA,B,a@b.co,,bio,nope,10,pw\n"))
	assert.ErrorContains(t, err, "bad location")
}

type memoryInserter struct {
	users map[string]models.User
}

func (m *memoryInserter) InsertUser(_ context.Context, u *models.User) error {
	if _, ok := m.users[u.Email]; ok {
		return ErrDuplicate
	}
	m.users[u.Email] = *u
	return nil
}

func TestLoad(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("already"), bcrypt.MinCost)
	require.NoError(t, err)

	rows := []Row{
		{FirstName: "A", Email: "A@x.io", Location: 10001, Password: "plain-pw"},
		{FirstName: "B", Email: "b@x.io", Location: 10002, Radius: 5, Password: string(hashed)},
		{FirstName: "A2", Email: "a@x.io", Location: 10001, Password: "plain-pw"},
	}
	store := &memoryInserter{users: map[string]models.User{}}

	res, err := Load(context.Background(), store, rows, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Inserted: 2, Skipped: 1}, res)

	a := store.users["a@x.io"]
	assert.Equal(t, "A", a.FirstName)
	assert.Equal(t, models.DefaultRadius, a.Radius)
	assert.Equal(t, models.DefaultImageURL, a.ImageURL)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(a.Password), []byte("plain-pw")))

	b := store.users["b@x.io"]
	assert.Equal(t, string(hashed), b.Password)
	assert.Equal(t, 5, b.Radius)
}
