/*
handlers.go - HTTP API handlers for the lottery backend

PURPOSE:
  Exposes the settlement engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Tickets:
    GET  /api/tickets                       List the catalog
    GET  /api/tickets/{id}                  Get one ticket
    POST /api/tickets/{id}/purchases        Settle a purchase

  Redemption:
    POST /api/transactions/{code}/redeem    Request redemption
    POST /api/transactions/{code}/cash      Complete redemption

ERROR HANDLING:
  Domain errors map to HTTP status codes:
  - 400: InvalidPayment, malformed request bodies
  - 404: TicketNotFound, TransactionNotFound
  - 409: LimitExceeded, NotWinner, AlreadyCashed, RedemptionNotPending
  - 500: StoreFailure and everything else

SECURITY NOTE:
  Currently NO authentication. The user_id in the request body is
  trusted. Front an identity layer before exposing this publicly.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/warp/lotto-engine/lotto"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  lotto.TxStore
	Engine *lotto.SettlementEngine
}

// NewHandler creates a new handler with the given store and engine.
func NewHandler(store lotto.TxStore, engine *lotto.SettlementEngine) *Handler {
	return &Handler{Store: store, Engine: engine}
}

// =============================================================================
// TICKET HANDLERS
// =============================================================================

// ListTickets returns the ticket catalog.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Store.ListTickets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tickets", err)
		return
	}

	dtos := make([]TicketDTO, len(tickets))
	for i, t := range tickets {
		dtos[i] = ticketDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTicket returns one catalog ticket.
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id := lotto.TicketID(chi.URLParam(r, "id"))

	ticket, err := h.Store.GetTicket(r.Context(), id)
	if err != nil {
		if errors.Is(err, lotto.ErrTicketNotFound) {
			writeError(w, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get ticket", err)
		return
	}
	writeJSON(w, http.StatusOK, ticketDTO(*ticket))
}

// =============================================================================
// PURCHASE HANDLER
// =============================================================================

// Purchase settles a purchase of the ticket in the URL for the user in
// the body.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var body PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	receipt, err := h.Engine.Purchase(r.Context(), lotto.PurchaseRequest{
		UserID:       lotto.UserID(body.UserID),
		TicketID:     lotto.TicketID(chi.URLParam(r, "id")),
		Numbers:      body.Numbers,
		PaymentProof: body.PaymentProof,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ReceiptDTO{
		ConfirmationCode: receipt.ConfirmationCode,
		Winnings:         receipt.Winnings.StringFixed(2),
		IsWinner:         receipt.IsWinner,
	})
}

// =============================================================================
// REDEMPTION HANDLERS
// =============================================================================

// RequestRedemption moves a winning transaction to PENDING.
func (h *Handler) RequestRedemption(w http.ResponseWriter, r *http.Request) {
	var body RedemptionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if body.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	code := chi.URLParam(r, "code")
	if err := h.Engine.RequestRedemption(r.Context(), lotto.UserID(body.UserID), code); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"confirmation_code": code, "redeemed": string(lotto.RedemptionPending)})
}

// CashRedemption completes a pending redemption.
func (h *Handler) CashRedemption(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.Engine.CompleteRedemption(r.Context(), code); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"confirmation_code": code, "redeemed": string(lotto.RedemptionDone), "cashed": true})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// writeDomainError maps settlement errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lotto.ErrInvalidPayment):
		writeError(w, http.StatusBadRequest, "Please enter your payment information", nil)
	case lotto.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, lotto.ErrLimitExceeded):
		writeError(w, http.StatusConflict, "Reached transaction limit for this ticket", err)
	case lotto.IsClientError(err):
		writeError(w, http.StatusConflict, "Cannot redeem this transaction", err)
	default:
		writeError(w, http.StatusInternalServerError, "Purchase could not be processed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
