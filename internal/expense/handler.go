package expense

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/wisnuadi/splitledger/internal/auth"
	"github.com/wisnuadi/splitledger/internal/transport"
)

type ServiceAPI interface {
	CreateExpense(ctx context.Context, dto CreateExpenseDTO, ownerID int64) (*Expense, error)
	GetExpense(ctx context.Context, id, requesterID int64) (*Expense, error)
	ListExpenses(ctx context.Context, userID int64, q ListQuery) ([]*Expense, error)
	DeleteExpense(ctx context.Context, id, requesterID int64) error
	MarkSplitPaid(ctx context.Context, expenseID, splitID, requesterID int64, paid bool) (*Split, error)
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

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateExpense: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.CreateExpense(r.Context(), dto, user.ID)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateExpense: expense created",
		"expense_id", e.ID,
		"user_id", user.ID,
		"amount", e.Amount,
		"is_split", e.IsSplit)

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	e, err := h.Service.GetExpense(r.Context(), id, user.ID)
	if err != nil {
		h.Logger.Error("GetExpense: service error", "error", err, "expense_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := h.Service.ListExpenses(r.Context(), user.ID, q)
	if err != nil {
		h.Logger.Error("ListExpenses: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if err := h.Service.DeleteExpense(r.Context(), id, user.ID); err != nil {
		h.Logger.Error("DeleteExpense: service error", "error", err, "expense_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkSplitPaid(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}
	splitID, err := strconv.ParseInt(chi.URLParam(r, "splitID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid split ID")
		return
	}

	var dto MarkSplitPaidDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sp, err := h.Service.MarkSplitPaid(r.Context(), expenseID, splitID, user.ID, dto.Paid)
	if err != nil {
		h.Logger.Error("MarkSplitPaid: service error", "error", err,
			"expense_id", expenseID, "split_id", splitID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sp)
}

// parseListQuery reads pagination and date-window parameters. period presets
// take precedence over explicit from/to.
func parseListQuery(r *http.Request) (ListQuery, error) {
	q := ListQuery{Limit: 20, Offset: 0}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			q.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			q.Offset = o
		}
	}

	if period := r.URL.Query().Get("period"); period != "" {
		from, to, err := periodWindow(period, time.Now())
		if err != nil {
			return q, err
		}
		q.From = &from
		q.To = &to
		return q, nil
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return q, errInvalidDate
		}
		q.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return q, errInvalidDate
		}
		// to is inclusive in the API; the query uses [from, to).
		to = to.AddDate(0, 0, 1)
		q.To = &to
	}

	return q, nil
}

// periodWindow expands a preset into a [from, to) range containing now.
func periodWindow(period string, now time.Time) (time.Time, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "day":
		return today, today.AddDate(0, 0, 1), nil
	case "week":
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7 // weeks start on Monday
		}
		start := today.AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7), nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, errInvalidPeriod
	}
}
