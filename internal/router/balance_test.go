package router

import (
	"encoding/json"
	"net/http"

	"smart-money/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *APISuite) getBalance(query string) models.Balance {
	w, env := s.do(http.MethodGet, "/balance?"+query, nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var balance models.Balance
	require.NoError(s.T(), json.Unmarshal(env.Data, &balance))
	return balance
}

func (s *APISuite) TestBalanceEmptyLedger() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")

	balance := s.getBalance("userId=1")
	assert.Zero(s.T(), balance.TotalIncomes)
	assert.Zero(s.T(), balance.TotalExpenses)
	assert.Zero(s.T(), balance.NetBalance)
	assert.Equal(s.T(), "EUR", balance.Currency, "currency defaults when omitted")
}

func (s *APISuite) TestBalanceAggregates() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")

	for _, v := range []float64{1500, 200} {
		w, _ := s.do(http.MethodPost, "/incomes", gin.H{"ownerId": 1, "title": "in", "value": v}, "")
		require.Equal(s.T(), http.StatusOK, w.Code)
	}
	for _, v := range []float64{50, 30.5} {
		w, _ := s.do(http.MethodPost, "/expenses", gin.H{"ownerId": 1, "title": "out", "value": v}, "")
		require.Equal(s.T(), http.StatusOK, w.Code)
	}

	balance := s.getBalance("userId=1&currency=USD")
	assert.Equal(s.T(), 1700.0, balance.TotalIncomes)
	assert.Equal(s.T(), 80.5, balance.TotalExpenses)
	assert.Equal(s.T(), 1619.5, balance.NetBalance)
	assert.Equal(s.T(), "USD", balance.Currency, "currency tag passes through untouched")

	// idempotent: same result without mutation in between
	assert.Equal(s.T(), balance, s.getBalance("userId=1&currency=USD"))
}

func (s *APISuite) TestBalanceScopedToOwner() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")
	s.register("Bob", "Ray", "bob@x.com", "secret2")

	w, _ := s.do(http.MethodPost, "/expenses", gin.H{"ownerId": 1, "title": "Groceries", "value": 50.0}, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	assert.Equal(s.T(), 50.0, s.getBalance("userId=1").TotalExpenses)
	assert.Zero(s.T(), s.getBalance("userId=2").TotalExpenses)
}

func (s *APISuite) TestBalanceInvalidUserID() {
	w, _ := s.do(http.MethodGet, "/balance?userId=abc", nil, "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}
