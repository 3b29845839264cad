package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"friender/pkg/dto"
	"friender/pkg/geo"
	"friender/pkg/logger"
	"friender/pkg/matching"
	"friender/pkg/models"
	eventtypes "friender/pkg/types/eventtype"
	"friender/services/match/repository"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfAction   = errors.New("cannot like or dislike yourself")
)

// users touched this close to a rebuild are always rescanned, covering clock
// skew between app hosts that stamp updated_at
const indexClockSkew = time.Minute

// UserStore is implemented by *repository.UserRepository.
type UserStore interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersUpdatedSince(ctx context.Context, since time.Time) ([]models.User, error)
	UpdateProfile(ctx context.Context, id uint, req dto.UpdateProfileRequest) (*models.User, error)
	LikedIDs(ctx context.Context, userID uint) ([]uint, error)
	LikerIDs(ctx context.Context, userID uint) ([]uint, error)
	DislikedIDs(ctx context.Context, userID uint) ([]uint, error)
	HasLike(ctx context.Context, actorID, targetID uint) (bool, error)
	InsertLike(ctx context.Context, actorID, targetID uint) (bool, error)
	InsertDislike(ctx context.Context, actorID, targetID uint) error
}

// LocationIndex is implemented by *repository.GeoIndex.
type LocationIndex interface {
	Index(ctx context.Context, userID uint, location int) error
	Nearby(ctx context.Context, location, radius int) ([]uint, error)
}

type MatchPublisher interface {
	PublishMatchEvent(event eventtypes.MatchEvent) error
}

type MatchService struct {
	repo    UserStore
	calc    geo.Calculator
	locator *geo.Table
	index   LocationIndex
	emitter MatchPublisher

	// indexedSince is when the last successful rebuild started. The index is
	// only trusted after one.
	indexMu      sync.RWMutex
	indexReady   bool
	indexedSince time.Time
}

// NewMatchService wires the engine. index and emitter may be nil.
func NewMatchService(repo UserStore, calc geo.Calculator, locator *geo.Table, index LocationIndex, emitter MatchPublisher) *MatchService {
	return &MatchService{
		repo:    repo,
		calc:    calc,
		locator: locator,
		index:   index,
		emitter: emitter,
	}
}

func toProfile(u models.User) matching.Profile {
	return matching.Profile{ID: u.ID, Location: u.Location, Radius: u.Radius}
}

func (s *MatchService) candidateView(u models.User, distance *int) dto.CandidateView {
	return dto.CandidateView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImageURL:  u.ImageURL,
		Bio:       u.Bio,
		Distance:  distance,
	}
}

func (s *MatchService) distanceBetween(a, b models.User) *int {
	d, err := s.calc.Distance(a.Location, b.Location)
	if err != nil {
		return nil
	}
	return lo.ToPtr(matching.RoundMiles(d))
}

func (s *MatchService) getUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *MatchService) indexState() (bool, time.Time) {
	s.indexMu.RLock()
	defer s.indexMu.RUnlock()
	return s.index != nil && s.indexReady, s.indexedSince
}

// candidatePool prefers the geo index and falls back to every user. Users
// created or edited since the last rebuild are always added, since nothing
// guarantees they reached the index (seeded rows, dropped user.created).
func (s *MatchService) candidatePool(ctx context.Context, requester *models.User) ([]models.User, error) {
	ready, since := s.indexState()
	if !ready {
		return s.repo.ListUsers(ctx)
	}

	ids, err := s.index.Nearby(ctx, requester.Location, requester.Radius)
	if err != nil {
		logger.Warn(logger.LogEventWarning, "geo index lookup failed, scanning all users", map[string]interface{}{
			"user_id": requester.ID,
			"error":   err.Error(),
		})
		return s.repo.ListUsers(ctx)
	}

	nearby, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListUsersUpdatedSince(ctx, since.Add(-indexClockSkew))
	if err != nil {
		return nil, err
	}
	return lo.UniqBy(append(nearby, recent...), func(u models.User) uint { return u.ID }), nil
}

// GetAvailableCandidate returns nil without error when nobody qualifies.
func (s *MatchService) GetAvailableCandidate(ctx context.Context, userID uint) (*dto.CandidateView, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	liked, err := s.repo.LikedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	disliked, err := s.repo.DislikedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dislikes: %w", err)
	}

	users, err := s.candidatePool(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	pool := lo.Map(users, func(u models.User, _ int) matching.Profile { return toProfile(u) })
	candidate, ok := matching.SelectCandidate(s.calc, toProfile(*user), pool, append(liked, disliked...))
	if !ok {
		logger.Debug(logger.LogEventCandidateMiss, "no available candidate", map[string]interface{}{"user_id": userID})
		return nil, nil
	}

	// candidate는 항상 users에서 나온다
	byID := lo.KeyBy(users, func(u models.User) uint { return u.ID })
	view := s.candidateView(byID[candidate.ID], lo.ToPtr(matching.RoundMiles(candidate.Distance)))
	return &view, nil
}

func (s *MatchService) GetMatches(ctx context.Context, userID uint) ([]dto.CandidateView, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	liked, err := s.repo.LikedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	likers, err := s.repo.LikerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likers: %w", err)
	}

	ids := matching.MutualMatches(liked, likers, userID)
	users, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	views := lo.Map(users, func(u models.User, _ int) dto.CandidateView {
		return s.candidateView(u, s.distanceBetween(*user, u))
	})
	return views, nil
}

func (s *MatchService) checkPair(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfAction
	}
	if _, err := s.getUser(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.getUser(ctx, targetID); err != nil {
		return err
	}
	return nil
}

// Like records actor -> target. A repeated like is not an error: it reports
// the current status with AlreadyRecorded set.
func (s *MatchService) Like(ctx context.Context, actorID, targetID uint) (dto.LikeResponse, error) {
	if err := s.checkPair(ctx, actorID, targetID); err != nil {
		return dto.LikeResponse{}, err
	}

	matched, err := s.repo.InsertLike(ctx, actorID, targetID)
	already := false
	if errors.Is(err, repository.ErrAlreadyRecorded) {
		already = true
		matched, err = s.repo.HasLike(ctx, targetID, actorID)
	}
	if err != nil {
		return dto.LikeResponse{}, fmt.Errorf("failed to record like: %w", err)
	}

	resp := dto.LikeResponse{Status: dto.StatusLiked, AlreadyRecorded: already}
	if matched {
		resp.Status = dto.StatusMatched
	}

	logger.Info(logger.LogEventLike, "like recorded", map[string]interface{}{
		"actor_id":  actorID,
		"target_id": targetID,
		"status":    resp.Status,
		"duplicate": already,
	})

	if matched && !already {
		s.announceMatch(actorID, targetID)
	}
	return resp, nil
}

func (s *MatchService) announceMatch(actorID, targetID uint) {
	event := eventtypes.MatchEvent{
		MatchID:   uuid.NewString(),
		UserIDs:   []uint{targetID, actorID},
		MatchedAt: time.Now(),
	}

	logger.Info(logger.LogEventMatchSuccess, "match created", event)

	if s.emitter == nil {
		return
	}
	// 매칭 알림 실패는 좋아요 결과에 영향을 주지 않는다
	if err := s.emitter.PublishMatchEvent(event); err != nil {
		logger.Error(logger.LogEventError, "failed to publish match event", map[string]interface{}{
			"match_id": event.MatchID,
			"error":    err.Error(),
		})
	}
}

func (s *MatchService) Dislike(ctx context.Context, actorID, targetID uint) (dto.LikeResponse, error) {
	if err := s.checkPair(ctx, actorID, targetID); err != nil {
		return dto.LikeResponse{}, err
	}

	already := false
	if err := s.repo.InsertDislike(ctx, actorID, targetID); err != nil {
		if !errors.Is(err, repository.ErrAlreadyRecorded) {
			return dto.LikeResponse{}, fmt.Errorf("failed to record dislike: %w", err)
		}
		already = true
	}

	logger.Info(logger.LogEventDislike, "dislike recorded", map[string]interface{}{
		"actor_id":  actorID,
		"target_id": targetID,
		"duplicate": already,
	})
	return dto.LikeResponse{Status: dto.StatusDisliked, AlreadyRecorded: already}, nil
}

// GetProfile returns the owner's full profile.
func (s *MatchService) GetProfile(ctx context.Context, userID uint) (*dto.UserProfileDTO, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileDTO(user), nil
}

// GetUserView is what viewer sees of another user, distance included.
func (s *MatchService) GetUserView(ctx context.Context, viewerID, userID uint) (*dto.CandidateView, error) {
	viewer, err := s.getUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := s.candidateView(*user, s.distanceBetween(*viewer, *user))
	return &view, nil
}

func (s *MatchService) UpdateProfile(ctx context.Context, userID uint, req dto.UpdateProfileRequest) (*dto.UserProfileDTO, error) {
	user, err := s.repo.UpdateProfile(ctx, userID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.locator != nil && !s.locator.Has(user.Location) {
		// 좌표가 없는 우편번호는 저장하되 매칭에서 제외된다
		logger.Warn(logger.LogEventWarning, "location missing from postal table", map[string]interface{}{
			"user_id":  user.ID,
			"location": user.Location,
		})
	}

	if err := s.IndexUser(ctx, user.ID, user.Location); err != nil {
		logger.Logger.Warn().Err(err).Uint("user_id", user.ID).Msg("⚠️ Failed to reindex user location")
	}
	return toProfileDTO(user), nil
}

func (s *MatchService) IndexUser(ctx context.Context, userID uint, location int) error {
	if s.index == nil {
		return nil
	}
	return s.index.Index(ctx, userID, location)
}

// RebuildIndex reloads every user's location into the geo index. Until it
// succeeds candidate scans ignore the index.
func (s *MatchService) RebuildIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	started := time.Now()

	s.indexMu.Lock()
	s.indexReady = false
	s.indexMu.Unlock()

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return err
	}

	// entries are overwritten in place, never cleared, so replicas sharing
	// the set never observe it half empty
	indexed := 0
	for _, u := range users {
		if err := s.index.Index(ctx, u.ID, u.Location); err != nil {
			if !errors.Is(err, geo.ErrUnknownLocation) {
				return fmt.Errorf("failed to index user %d: %w", u.ID, err)
			}
			logger.Logger.Warn().Uint("user_id", u.ID).Int("location", u.Location).Msg("⚠️ Skipping user without coordinates")
			continue
		}
		indexed++
	}

	s.indexMu.Lock()
	s.indexReady = true
	s.indexedSince = started
	s.indexMu.Unlock()

	logger.Logger.Info().Int("indexed", indexed).Int("total", len(users)).Msg("✅ Geo index rebuilt")
	return nil
}

func toProfileDTO(u *models.User) *dto.UserProfileDTO {
	return &dto.UserProfileDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImageURL:  u.ImageURL,
		Bio:       u.Bio,
		Location:  u.Location,
		Radius:    u.Radius,
	}
}
