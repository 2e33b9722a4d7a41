/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Jackpots and winnings are serialized as fixed two-decimal strings
  ("1000.00", "50.75"), never as floats.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/lotto-engine/lotto"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// TicketDTO represents a catalog ticket in API responses. The draw is
// not exposed; the client learns the outcome from the receipt.
type TicketDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Jackpot   string `json:"jackpot"`
	MaxNumber int    `json:"max_number"`
	NumSold   int    `json:"num_sold"`
}

func ticketDTO(t lotto.Ticket) TicketDTO {
	return TicketDTO{
		ID:        string(t.ID),
		Type:      t.Type,
		Jackpot:   t.Jackpot.StringFixed(2),
		MaxNumber: t.MaxNumber,
		NumSold:   t.NumSold,
	}
}

// PurchaseRequestDTO is the request body for a purchase. Numbers may be
// omitted or partial; any gap triggers a full quick-pick.
type PurchaseRequestDTO struct {
	UserID       string `json:"user_id"`
	Numbers      []int  `json:"numbers,omitempty"`
	PaymentProof string `json:"payment_proof"`
}

// ReceiptDTO is the response for a committed purchase.
type ReceiptDTO struct {
	ConfirmationCode string `json:"confirmation_code"`
	Winnings         string `json:"winnings"`
	IsWinner         bool   `json:"is_winner"`
}

// RedemptionRequestDTO identifies the caller for a redemption request.
type RedemptionRequestDTO struct {
	UserID string `json:"user_id"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
