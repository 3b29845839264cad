package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"friender/pkg/dto"
	"friender/pkg/models"
)

type edge struct {
	actor, target uint
}

// MemoryRepository is an in-process UserRepository with the same uniqueness
// and not-found semantics. Used by tests and local runs without MySQL.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   uint
	users    map[uint]models.User
	likes    map[edge]struct{}
	dislikes map[edge]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:   1,
		users:    make(map[uint]models.User),
		likes:    make(map[edge]struct{}),
		dislikes: make(map[edge]struct{}),
	}
}

func (r *MemoryRepository) InsertUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email != "" && u.Email == user.Email {
			return ErrAlreadyRecorded
		}
	}
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	if user.Radius == 0 {
		user.Radius = models.DefaultRadius
	}
	// gorm keeps preset timestamps on create, so do we
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetUsersByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) ListUsers(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) ListUsersUpdatedSince(_ context.Context, since time.Time) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.User{}
	for _, u := range r.users {
		if !u.UpdatedAt.Before(since) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, id uint, req dto.UpdateProfileRequest) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Location = req.Location
	u.Radius = req.Radius
	u.Bio = req.Bio
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return &u, nil
}

func (r *MemoryRepository) collect(set map[edge]struct{}, match func(edge) (uint, bool)) []uint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uint
	for e := range set {
		if id, ok := match(e); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *MemoryRepository) LikedIDs(_ context.Context, userID uint) ([]uint, error) {
	return r.collect(r.likes, func(e edge) (uint, bool) { return e.target, e.actor == userID }), nil
}

func (r *MemoryRepository) LikerIDs(_ context.Context, userID uint) ([]uint, error) {
	return r.collect(r.likes, func(e edge) (uint, bool) { return e.actor, e.target == userID }), nil
}

func (r *MemoryRepository) DislikedIDs(_ context.Context, userID uint) ([]uint, error) {
	return r.collect(r.dislikes, func(e edge) (uint, bool) { return e.target, e.actor == userID }), nil
}

func (r *MemoryRepository) HasLike(_ context.Context, actorID, targetID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.likes[edge{actorID, targetID}]
	return ok, nil
}

func (r *MemoryRepository) InsertLike(_ context.Context, actorID, targetID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkEndpoints(actorID, targetID); err != nil {
		return false, err
	}
	e := edge{actorID, targetID}
	if _, dup := r.likes[e]; dup {
		return false, ErrAlreadyRecorded
	}
	r.likes[e] = struct{}{}
	_, matched := r.likes[edge{targetID, actorID}]
	return matched, nil
}

func (r *MemoryRepository) InsertDislike(_ context.Context, actorID, targetID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkEndpoints(actorID, targetID); err != nil {
		return err
	}
	e := edge{actorID, targetID}
	if _, dup := r.dislikes[e]; dup {
		return ErrAlreadyRecorded
	}
	r.dislikes[e] = struct{}{}
	return nil
}

// DeleteUser removes the user and, like the FK cascade, every edge touching it.
func (r *MemoryRepository) DeleteUser(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	for _, set := range []map[edge]struct{}{r.likes, r.dislikes} {
		for e := range set {
			if e.actor == id || e.target == id {
				delete(set, e)
			}
		}
	}
	return nil
}

func (r *MemoryRepository) checkEndpoints(actorID, targetID uint) error {
	if _, ok := r.users[actorID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.users[targetID]; !ok {
		return ErrNotFound
	}
	return nil
}
