package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"friender/pkg/dto"
	"friender/pkg/helper"
	"friender/pkg/logger"
	"friender/services/match/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type MatchHandler struct {
	matchService *service.MatchService
	validate     *validator.Validate
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		validate:     helper.NewValidator(),
	}
}

func pathID(r *http.Request, key string) (uint, bool) {
	id, err := helper.ParseID(chi.URLParam(r, key))
	return id, err == nil
}

// authorizeSelf resolves the authenticated user and the {id} path param and
// rejects requests made on another user's behalf.
func authorizeSelf(w http.ResponseWriter, r *http.Request) (uint, bool) {
	userID, err := helper.UserIDFromHeader(r)
	if err != nil {
		helper.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	id, ok := pathID(r, "id")
	if !ok {
		helper.WriteError(w, http.StatusBadRequest, "invalid_id")
		return 0, false
	}
	if id != userID {
		helper.WriteError(w, http.StatusForbidden, "forbidden")
		return 0, false
	}
	return userID, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		helper.WriteError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrSelfAction):
		helper.WriteError(w, http.StatusBadRequest, "self_action")
	default:
		logger.Logger.Error().Err(err).Msg("❌ Request failed")
		helper.WriteError(w, http.StatusInternalServerError, "internal_error")
	}
}

// 후보 유저 조회
func (h *MatchHandler) AvailableUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeSelf(w, r)
	if !ok {
		return
	}

	candidate, err := h.matchService.GetAvailableCandidate(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// 후보가 없으면 null
	helper.WriteJSON(w, http.StatusOK, candidate)
}

// 매칭 목록 조회
func (h *MatchHandler) Matches(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeSelf(w, r)
	if !ok {
		return
	}

	matches, err := h.matchService.GetMatches(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.MatchesResponse{Matches: matches})
}

func (h *MatchHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.judge(w, r, h.matchService.Like)
}

func (h *MatchHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.judge(w, r, h.matchService.Dislike)
}

func (h *MatchHandler) judge(w http.ResponseWriter, r *http.Request, record func(ctx context.Context, actorID, targetID uint) (dto.LikeResponse, error)) {
	actorID, err := helper.UserIDFromHeader(r)
	if err != nil {
		helper.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	targetID, ok := pathID(r, "targetId")
	if !ok {
		helper.WriteError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	resp, err := record(r.Context(), actorID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, resp)
}

// 유저 조회: 본인이면 전체 프로필, 아니면 공개 정보
func (h *MatchHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	viewerID, err := helper.UserIDFromHeader(r)
	if err != nil {
		helper.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		helper.WriteError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	if id == viewerID {
		profile, err := h.matchService.GetProfile(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		helper.WriteJSON(w, http.StatusOK, profile)
		return
	}

	view, err := h.matchService.GetUserView(r.Context(), viewerID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, view)
}

// 프로필 수정
func (h *MatchHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := authorizeSelf(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helper.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		helper.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "invalid_form",
			"fields": helper.ValidationErrors(err),
		})
		return
	}

	profile, err := h.matchService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, profile)
}

func (h *MatchHandler) Health(w http.ResponseWriter, r *http.Request) {
	helper.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
