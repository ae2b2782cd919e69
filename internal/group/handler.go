package group

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/wisnuadi/splitledger/internal/auth"
	"github.com/wisnuadi/splitledger/internal/transport"
)

type ServiceAPI interface {
	CreateGroup(ctx context.Context, dto CreateGroupDTO, creatorID int64) (*Group, error)
	GroupsForUser(ctx context.Context, userID int64) ([]*Group, error)
	Members(ctx context.Context, groupID int64) ([]int64, error)
	IsMember(ctx context.Context, userID, groupID int64) (bool, error)
	AddMember(ctx context.Context, groupID, userID, requesterID int64) (*Membership, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateGroup: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateGroup: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.Service.CreateGroup(r.Context(), dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateGroup: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) GetMyGroups(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groups, err := h.Service.GroupsForUser(r.Context(), user.ID)
	if err != nil {
		h.Logger.Error("GetMyGroups: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, groups)
}

func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID, err := h.groupIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return
	}

	isMember, err := h.Service.IsMember(r.Context(), user.ID, groupID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !isMember {
		h.WriteError(w, http.StatusForbidden, "requester is not a member of this group")
		return
	}

	members, err := h.Service.Members(r.Context(), groupID)
	if err != nil {
		h.Logger.Error("GetMembers: service error", "error", err, "group_id", groupID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MembersResponse{GroupID: groupID, Members: members})
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID, err := h.groupIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return
	}

	var dto AddMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := h.Service.AddMember(r.Context(), groupID, dto.UserID, user.ID)
	if err != nil {
		h.Logger.Error("AddMember: service error", "error", err,
			"group_id", groupID, "user_id", dto.UserID, "requester_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, membership)
}

func (h *Handler) groupIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
