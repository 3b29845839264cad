package repository

import (
	"context"
	"errors"
	"time"

	"friender/pkg/db"
	"friender/pkg/dto"
	"friender/pkg/logger"
	"friender/pkg/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	mysqlErrDeadlock = 1213
	// 동시 상호 좋아요의 교착 상태는 한쪽이 재시도하면 풀린다
	maxLikeAttempts = 3
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyRecorded = errors.New("edge already recorded")
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// 데이터베이스 초기화
func (r *UserRepository) InitDB() error {
	if err := db.Migrate(r.db); err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to migrate tables")
		return err
	}
	logger.Logger.Info().Msg("✅ Tables users, likes and dislikes migrated or already exist.")
	return nil
}

// 유저 생성
func (r *UserRepository) InsertUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyRecorded
		}
		return err
	}
	return nil
}

// 유저 조회 (ID)
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		logger.Logger.Error().Err(err).Uint("user_id", id).Msg("❌ Failed to get user by ID")
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs returns the existing users among ids, ordered by id.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error
	return users, err
}

// 유저 리스트 조회
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to get user list")
		return nil, err
	}
	return users, nil
}

// ListUsersUpdatedSince returns users created or edited at or after since.
func (r *UserRepository) ListUsersUpdatedSince(ctx context.Context, since time.Time) ([]models.User, error) {
	users := []models.User{}
	err := r.db.WithContext(ctx).Where("updated_at >= ?", since).Order("id ASC").Find(&users).Error
	if err != nil {
		logger.Logger.Error().Err(err).Time("since", since).Msg("❌ Failed to get recently updated users")
		return nil, err
	}
	return users, nil
}

// 프로필 수정
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint, req dto.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.Location = req.Location
		user.Radius = req.Radius
		user.Bio = req.Bio
		return tx.Save(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		logger.Logger.Error().Err(err).Uint("user_id", id).Msg("❌ Failed to update profile")
		return nil, err
	}
	return &user, nil
}

// 내가 좋아요한 유저 ID 목록
func (r *UserRepository) LikedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("actor_id = ?", userID).
		Order("target_id ASC").
		Pluck("target_id", &ids).Error
	return ids, err
}

// 나를 좋아요한 유저 ID 목록
func (r *UserRepository) LikerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("target_id = ?", userID).
		Order("actor_id ASC").
		Pluck("actor_id", &ids).Error
	return ids, err
}

// 내가 싫어요한 유저 ID 목록
func (r *UserRepository) DislikedIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Dislike{}).
		Where("actor_id = ?", userID).
		Order("target_id ASC").
		Pluck("target_id", &ids).Error
	return ids, err
}

func (r *UserRepository) HasLike(ctx context.Context, actorID, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("actor_id = ? AND target_id = ?", actorID, targetID).
		Count(&count).Error
	return count > 0, err
}

func isDeadlock(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDeadlock
}

// InsertLike stores actor -> target and reports whether target -> actor
// already existed inside the same transaction. The reverse edge is read with
// a shared lock, so of two concurrent mutual likes one waits for the other
// (or is rolled back as the deadlock victim and retried) and sees it.
func (r *UserRepository) InsertLike(ctx context.Context, actorID, targetID uint) (bool, error) {
	var (
		matched bool
		err     error
	)
	for attempt := 1; attempt <= maxLikeAttempts; attempt++ {
		matched, err = r.insertLike(ctx, actorID, targetID)
		if !isDeadlock(err) {
			break
		}
		logger.Logger.Warn().Err(err).Int("attempt", attempt).Uint("actor_id", actorID).Uint("target_id", targetID).Msg("⚠️ Like deadlocked, retrying")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, ErrAlreadyRecorded
		}
		logger.Logger.Error().Err(err).Uint("actor_id", actorID).Uint("target_id", targetID).Msg("❌ Failed to insert like")
		return false, err
	}
	return matched, nil
}

func (r *UserRepository) insertLike(ctx context.Context, actorID, targetID uint) (bool, error) {
	var matched bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.Like{ActorID: actorID, TargetID: targetID}
		if err := tx.Omit(clause.Associations).Create(&like).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Model(&models.Like{}).
			Where("actor_id = ? AND target_id = ?", targetID, actorID).
			Count(&count).Error; err != nil {
			return err
		}
		matched = count > 0
		return nil
	})
	return matched, err
}

func (r *UserRepository) InsertDislike(ctx context.Context, actorID, targetID uint) error {
	dislike := models.Dislike{ActorID: actorID, TargetID: targetID}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dislike).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyRecorded
		}
		logger.Logger.Error().Err(err).Uint("actor_id", actorID).Uint("target_id", targetID).Msg("❌ Failed to insert dislike")
		return err
	}
	return nil
}
