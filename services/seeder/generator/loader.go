package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"friender/pkg/models"

	"golang.org/x/crypto/bcrypt"
)

// ErrDuplicate is returned by a UserInserter for an email that already exists.
var ErrDuplicate = errors.New("duplicate user")

type UserInserter interface {
	InsertUser(ctx context.Context, user *models.User) error
}

type LoadResult struct {
	Inserted int
	Skipped  int
}

// ToUser hashes plaintext passwords; values that already look like bcrypt
// hashes are stored as given.
func (r Row) ToUser(cost int) (models.User, error) {
	password := r.Password
	if !strings.HasPrefix(password, "$2") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return models.User{}, err
		}
		password = string(hashed)
	}

	user := models.User{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     strings.ToLower(r.Email),
		ImageURL:  r.ImageURL,
		Bio:       r.Bio,
		Location:  r.Location,
		Radius:    r.Radius,
		Password:  password,
	}
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}
	if user.Radius <= 0 {
		user.Radius = models.DefaultRadius
	}
	return user, nil
}

// Load inserts every row, skipping users whose email is already taken.
func Load(ctx context.Context, store UserInserter, rows []Row, cost int) (LoadResult, error) {
	var res LoadResult
	for i, row := range rows {
		user, err := row.ToUser(cost)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := store.InsertUser(ctx, &user); err != nil {
			if errors.Is(err, ErrDuplicate) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("row %d: %w", i+1, err)
		}
		res.Inserted++
	}
	return res, nil
}
