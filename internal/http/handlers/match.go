package handlers

import (
	"net/http"
	"time"

	"propmatch/internal/app"
	"propmatch/internal/common"
	"propmatch/internal/domain/match"
	"propmatch/internal/http/middleware"
	"propmatch/internal/http/response"
)

type MatchHandler struct {
	matches *app.MatchService
	limiter middleware.Limiter
}

func NewMatchHandler(matches *app.MatchService, limiter middleware.Limiter) *MatchHandler {
	return &MatchHandler{matches: matches, limiter: limiter}
}

type assignRequest struct {
	StudentID string `json:"student_id"`
}

type respondRequest struct {
	Status string `json:"status"`
}

func (h *MatchHandler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if h.limiter != nil && !h.limiter.Allow("assign:"+actor.UserID.String(), 30, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, "assignment rate limit exceeded", nil))
		return
	}
	proposalID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	studentID, err := common.ParseUUID(req.StudentID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid assignment", map[string]string{"student_id": "invalid uuid"}))
		return
	}
	created, err := h.matches.Assign(r.Context(), actor, proposalID, studentID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *MatchHandler) ListByProposal(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	proposalID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.matches.ListByProposal(r.Context(), actor, proposalID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *MatchHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.matches.ListByStudent(r.Context(), actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *MatchHandler) Respond(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	matchID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.matches.Respond(r.Context(), actor, matchID, match.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
