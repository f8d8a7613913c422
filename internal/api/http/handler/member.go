package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rosterlab/memberd/internal/logger"
	"github.com/rosterlab/memberd/internal/model"
)

// MemberService defines policy-gated member row operations.
type MemberService interface {
	Get(ctx context.Context, caller model.Identity, id int64) (model.Member, error)
	List(ctx context.Context, caller model.Identity) ([]model.Member, error)
	UpdateProfile(ctx context.Context, caller model.Identity, id int64, firstName, lastName string) (model.Member, error)
}

// Member handles the capability-guarded member endpoints. The acting
// identity is taken from the request context set by the authenticate
// middleware; requests with no identity are treated as anonymous and see
// nothing.
type Member struct {
	memberService  MemberService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewMember creates a new Member handler.
func NewMember(memberService MemberService, contextManager model.ContextManager, logger *logger.Logger) *Member {
	return &Member{
		memberService:  memberService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// memberResponse is the outward shape of a member row. The password hash
// never appears here.
type memberResponse struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// List returns the member rows visible to the caller.
func (h *Member) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.contextManager.GetIdentityFromContext(r.Context())

	members, err := h.memberService.List(r.Context(), caller)
	if err != nil {
		h.logger.Error("Member handler: list failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	response := make([]memberResponse, 0, len(members))
	for _, m := range members {
		response = append(response, toMemberResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

// Get returns a single member row if the caller may read it.
func (h *Member) Get(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.contextManager.GetIdentityFromContext(r.Context())

	id, err := memberID(r)
	if err != nil {
		handleError(w, model.ErrNotFound)
		return
	}

	member, err := h.memberService.Get(r.Context(), caller, id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// Update changes the profile fields of a member row the caller may write.
func (h *Member) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := h.contextManager.GetIdentityFromContext(r.Context())

	id, err := memberID(r)
	if err != nil {
		handleError(w, model.ErrNotFound)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, model.ErrInvalidInput)
		return
	}

	member, err := h.memberService.UpdateProfile(r.Context(), caller, id, req.FirstName, req.LastName)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

func memberID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "memberID"), 10, 64)
}

func toMemberResponse(m model.Member) memberResponse {
	return memberResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
