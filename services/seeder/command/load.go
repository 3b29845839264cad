package command

import (
	"context"
	"errors"
	"os"

	"friender/pkg/config"
	"friender/pkg/db"
	"friender/pkg/geo"
	"friender/pkg/logger"
	"friender/pkg/models"
	"friender/pkg/redis"
	"friender/services/match/repository"
	"friender/services/seeder/generator"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var loadFile string

type userStore interface {
	InsertUser(ctx context.Context, user *models.User) error
}

type userIndexer interface {
	Index(ctx context.Context, userID uint, location int) error
}

// repoInserter maps the repository's duplicate error onto the loader's and
// puts every inserted user into the geo index when one is available.
type repoInserter struct {
	repo  userStore
	index userIndexer
}

func (r repoInserter) InsertUser(ctx context.Context, user *models.User) error {
	err := r.repo.InsertUser(ctx, user)
	if errors.Is(err, repository.ErrAlreadyRecorded) {
		return generator.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if r.index != nil {
		if err := r.index.Index(ctx, user.ID, user.Location); err != nil {
			logger.Logger.Warn().Err(err).Uint("user_id", user.ID).Int("location", user.Location).Msg("⚠️ Failed to index seeded user")
		}
	}
	return nil
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Insert users from a CSV into MySQL",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(loadFile)
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := generator.ReadCSV(f)
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbConn, err := db.ConnectMySQL(cfg.MySQL)
		if err != nil {
			return err
		}

		userRepo := repository.NewUserRepository(dbConn)
		if err := userRepo.InitDB(); err != nil {
			return err
		}

		inserter := repoInserter{repo: userRepo}
		rdb, err := redis.NewRedisClient(cmd.Context(), cfg.Redis)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("⚠️ Redis unavailable, seeded users are indexed on the next match service rebuild")
		} else {
			defer rdb.Close()
			table, err := geo.Load(cfg.Geo.PostalFile)
			if err != nil {
				return err
			}
			inserter.index = repository.NewGeoIndex(rdb, table)
		}

		res, err := generator.Load(cmd.Context(), inserter, rows, bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		logger.Logger.Info().
			Int("inserted", res.Inserted).
			Int("skipped", res.Skipped).
			Msg("✅ Users loaded")
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadFile, "file", "users.csv", "CSV produced by generate")
	rootCmd.AddCommand(loadCmd)
}
