//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/internal/integrationtest"
	"github.com/go-arkady/demo-bank/internal/integrationtest/helpers"
	"github.com/go-arkady/demo-bank/internal/middleware"
	"github.com/go-arkady/demo-bank/pkg/randompkg"
	"github.com/go-arkady/demo-bank/pkg/tokenpkg"
	"github.com/go-arkady/demo-bank/pkg/web"
)

// TestFundingFlowAPI walks the whole deposit path over HTTP: sign up,
// open an account, fund it twice, then read back the history.
func TestFundingFlowAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	tokenMaker, err := tokenpkg.NewPasetoMaker(server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v",
			server.Config.TokenSymmetricKey, err)
	}

	user := helpers.SeedUser(t, server.DB)
	authType := middleware.AuthTypeBearer
	duration := time.Minute

	do := func(t *testing.T, method, url string, body any) *httptest.ResponseRecorder {
		t.Helper()

		var reader *bytes.Reader

		if body != nil {
			encoded, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			reader = bytes.NewReader(encoded)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequest(method, url, reader)
		if err != nil {
			t.Fatalf("Creating request error: %v", err)
		}

		if err := middleware.AddAuthorization(req, tokenMaker, authType, user.Username, duration); err != nil {
			t.Fatalf("middleware.AddAuthorization() returned error: %v", err)
		}

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		return recorder
	}

	// Open a checking account
	recorder := do(t, http.MethodPost, "/accounts", map[string]string{
		"account_type": domain.Checking,
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("POST /accounts status code: got %v, want %v, body: %v",
			recorder.Code, http.StatusOK, recorder.Body.String())
	}

	accountRes := web.Response{
		Data: &struct {
			Account domain.Account `json:"account"`
		}{},
	}

	if err := json.NewDecoder(recorder.Body).Decode(&accountRes); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	account := accountRes.Data.(*struct {
		Account domain.Account `json:"account"`
	}).Account

	if len(account.AccountNumber) != randompkg.AccountNumberWidth {
		t.Errorf("account.AccountNumber=%q, want %v digits",
			account.AccountNumber, randompkg.AccountNumberWidth)
	}

	if account.Balance != "0.00" {
		t.Errorf("account.Balance=%q, want %q", account.Balance, "0.00")
	}

	if account.Status != domain.StatusActive {
		t.Errorf("account.Status=%q, want %q", account.Status, domain.StatusActive)
	}

	// Fund it from a card, then from a bank account
	fundURL := fmt.Sprintf("/accounts/%d/fund", account.ID)

	recorder = do(t, http.MethodPost, fundURL, map[string]any{
		"amount": "100.10",
		"funding_source": map[string]string{
			"type":           domain.InstrumentCard,
			"account_number": "4111111111111111",
		},
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("POST %v status code: got %v, want %v, body: %v",
			fundURL, recorder.Code, http.StatusOK, recorder.Body.String())
	}

	recorder = do(t, http.MethodPost, fundURL, map[string]any{
		"amount": "49.90",
		"funding_source": map[string]string{
			"type":           domain.InstrumentBank,
			"account_number": "000123456789",
			"routing_number": "110000000",
		},
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("POST %v status code: got %v, want %v, body: %v",
			fundURL, recorder.Code, http.StatusOK, recorder.Body.String())
	}

	fundRes := web.Response{
		Data: &struct {
			Transaction domain.Transaction `json:"transaction"`
			Balance     string             `json:"balance"`
		}{},
	}

	if err := json.NewDecoder(recorder.Body).Decode(&fundRes); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	balance := fundRes.Data.(*struct {
		Transaction domain.Transaction `json:"transaction"`
		Balance     string             `json:"balance"`
	}).Balance

	if balance != "150.00" {
		t.Errorf("balance after two deposits=%q, want %q", balance, "150.00")
	}

	// History comes back newest first
	recorder = do(t, http.MethodGet, fmt.Sprintf("/accounts/%d/transactions", account.ID), nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("GET transactions status code: got %v, want %v, body: %v",
			recorder.Code, http.StatusOK, recorder.Body.String())
	}

	listRes := web.Response{
		Data: &struct {
			Transactions []domain.Transaction `json:"transactions"`
		}{},
	}

	if err := json.NewDecoder(recorder.Body).Decode(&listRes); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	transactions := listRes.Data.(*struct {
		Transactions []domain.Transaction `json:"transactions"`
	}).Transactions

	if len(transactions) != 2 {
		t.Fatalf("len(transactions)=%v, want 2", len(transactions))
	}

	if transactions[0].Amount != "49.90" || transactions[1].Amount != "100.10" {
		t.Errorf("transactions not newest first: got amounts %q, %q",
			transactions[0].Amount, transactions[1].Amount)
	}

	// Funding a closed account is rejected before anything is written
	helpers.SetAccountStatus(t, server.DB, account.ID, domain.StatusClosed)

	recorder = do(t, http.MethodPost, fundURL, map[string]any{
		"amount": "10.00",
		"funding_source": map[string]string{
			"type":           domain.InstrumentCard,
			"account_number": "4111111111111111",
		},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("POST %v status code: got %v, want %v, body: %v",
			fundURL, recorder.Code, http.StatusBadRequest, recorder.Body.String())
	}
}
