package balance

import (
	"context"
	"net/http"

	"github.com/wisnuadi/splitledger/internal/auth"
	"github.com/wisnuadi/splitledger/internal/transport"
)

type ServiceAPI interface {
	Balances(ctx context.Context, userID int64) (*Report, error)
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

func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetBalances: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	report, err := h.Service.Balances(r.Context(), user.ID)
	if err != nil {
		h.Logger.Error("GetBalances: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}
