/*
handlers_test.go - HTTP-level tests for the purchase and redemption flow

Exercises the full stack (router -> handler -> engine -> store) against
the in-memory store with deterministic number/code sources.
*/
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/lotto-engine/api"
	"github.com/warp/lotto-engine/lotto"
	"github.com/warp/lotto-engine/lotto/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type fixedNumbers struct{ nums []int }

func (f fixedNumbers) Generate(count int) ([]int, error) { return f.nums, nil }

type countingCodes struct{ n int }

func (c *countingCodes) New(length int) (string, error) {
	c.n++
	return fmt.Sprintf("CONF%06d", c.n), nil
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	require.NoError(t, m.SaveTicket(context.Background(), lotto.Ticket{
		ID:             "pick5",
		Type:           "Pick 5",
		WinningNumbers: lotto.Pick{1, 2, 3, 4, 5},
		Jackpot:        decimal.NewFromInt(1000),
		MaxNumber:      99,
	}))

	engine := lotto.NewSettlementEngine(m, fixedNumbers{nums: []int{11, 12, 13, 14, 15}}, &countingCodes{})
	srv := httptest.NewServer(api.NewRouter(api.NewHandler(m, engine)))
	t.Cleanup(srv.Close)
	return srv, m
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// =============================================================================
// TICKET ENDPOINTS
// =============================================================================

func TestListTickets(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/tickets")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	tickets := decode[[]api.TicketDTO](t, resp)
	require.Len(t, tickets, 1)
	assert.Equal(t, "pick5", tickets[0].ID)
	assert.Equal(t, "1000.00", tickets[0].Jackpot)
}

func TestGetTicket_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/tickets/ghost")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// PURCHASE ENDPOINT
// =============================================================================

func TestPurchase_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tickets/pick5/purchases", api.PurchaseRequestDTO{
		UserID:       "user-1",
		Numbers:      []int{1, 2, 3, 98, 99},
		PaymentProof: "card:4242",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	receipt := decode[api.ReceiptDTO](t, resp)
	assert.Equal(t, "CONF000001", receipt.ConfirmationCode)
	assert.Equal(t, "50.00", receipt.Winnings) // 3 matches, 5% of 1000
	assert.True(t, receipt.IsWinner)
}

func TestPurchase_MissingPayment(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tickets/pick5/purchases", api.PurchaseRequestDTO{
		UserID:  "user-1",
		Numbers: []int{1, 2, 3, 4, 5},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPurchase_UnknownTicket(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tickets/ghost/purchases", api.PurchaseRequestDTO{
		UserID:       "user-1",
		PaymentProof: "card:4242",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchase_LimitExceeded_Conflict(t *testing.T) {
	srv, _ := newTestServer(t)

	body := api.PurchaseRequestDTO{UserID: "user-1", PaymentProof: "card:4242"}
	for i := 0; i < lotto.MaxPurchasesPerTicket; i++ {
		resp := postJSON(t, srv.URL+"/api/tickets/pick5/purchases", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := postJSON(t, srv.URL+"/api/tickets/pick5/purchases", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	errBody := decode[api.ErrorResponse](t, resp)
	assert.Contains(t, errBody.Details, "10 of 10")
}

func TestPurchase_MissingUserID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tickets/pick5/purchases", api.PurchaseRequestDTO{
		PaymentProof: "card:4242",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// REDEMPTION ENDPOINTS
// =============================================================================

func TestRedemption_Flow(t *testing.T) {
	srv, _ := newTestServer(t)

	// A winning purchase (exact draw).
	resp := postJSON(t, srv.URL+"/api/tickets/pick5/purchases", api.PurchaseRequestDTO{
		UserID:       "user-1",
		Numbers:      []int{1, 2, 3, 4, 5},
		PaymentProof: "card:4242",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	receipt := decode[api.ReceiptDTO](t, resp)

	redeemURL := srv.URL + "/api/transactions/" + receipt.ConfirmationCode

	resp = postJSON(t, redeemURL+"/redeem", api.RedemptionRequestDTO{UserID: "user-1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, redeemURL+"/cash", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Second cash attempt conflicts.
	resp = postJSON(t, redeemURL+"/cash", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRedemption_UnknownCode(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/transactions/NOPE/redeem", api.RedemptionRequestDTO{UserID: "user-1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
