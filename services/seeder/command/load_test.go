package command

import (
	"context"
	"errors"
	"testing"

	"friender/pkg/models"
	"friender/services/match/repository"
	"friender/services/seeder/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingIndexer struct {
	locations map[uint]int
	err       error
}

func (r *recordingIndexer) Index(_ context.Context, userID uint, location int) error {
	if r.err != nil {
		return r.err
	}
	if r.locations == nil {
		r.locations = map[uint]int{}
	}
	r.locations[userID] = location
	return nil
}

func TestRepoInserter_IndexesSeededUsers(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	index := &recordingIndexer{}
	rows := []generator.Row{
		{FirstName: "Ann", Email: "a@x.io", Location: 10001, Radius: 50, Password: "password"},
		{FirstName: "Ben", Email: "b@x.io", Location: 10002, Radius: 50, Password: "password"},
		{FirstName: "Ann", Email: "a@x.io", Location: 10001, Radius: 50, Password: "password"},
	}

	res, err := generator.Load(ctx, repoInserter{repo: repo, index: index}, rows, 4)
	require.NoError(t, err)
	assert.Equal(t, generator.LoadResult{Inserted: 2, Skipped: 1}, res)
	assert.Equal(t, map[uint]int{1: 10001, 2: 10002}, index.locations)
}

func TestRepoInserter_IndexFailureKeepsUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	inserter := repoInserter{repo: repo, index: &recordingIndexer{err: errors.New("redis down")}}

	user := &models.User{Email: "c@x.io", Location: 10001, Radius: 5}
	require.NoError(t, inserter.InsertUser(ctx, user))

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "c@x.io", stored.Email)

	// no index configured
	require.NoError(t, repoInserter{repo: repo}.InsertUser(ctx, &models.User{Email: "d@x.io", Location: 10002}))
}
