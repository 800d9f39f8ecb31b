package router

import (
	"encoding/json"
	"net/http"

	"smart-money/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *APISuite) TestCreateExpenseValidation() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")

	// value must be positive
	w, _ := s.do(http.MethodPost, "/expenses", gin.H{
		"ownerId": 1,
		"title":   "Groceries",
		"value":   -5.0,
	}, "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var count int64
	s.db.Model(&models.Expense{}).Count(&count)
	assert.Zero(s.T(), count, "rejected create must not persist a record")

	// owner must exist
	w, env := s.do(http.MethodPost, "/expenses", gin.H{
		"ownerId": 7,
		"title":   "Groceries",
		"value":   5.0,
	}, "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Equal(s.T(), "Owner not found", env.Message)
}

func (s *APISuite) TestExpenseCRUD() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")

	w, env := s.do(http.MethodPost, "/expenses", gin.H{
		"ownerId":     1,
		"title":       "Groceries",
		"description": "weekly shop",
		"value":       42.5,
	}, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var created models.Expense
	require.NoError(s.T(), json.Unmarshal(env.Data, &created))
	assert.EqualValues(s.T(), 1, created.OwnerID)
	assert.Equal(s.T(), 42.5, created.Value)

	w, _ = s.do(http.MethodGet, "/expenses/1", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/expenses/9", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodGet, "/expenses/owner/1", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	var list []models.Expense
	require.NoError(s.T(), json.Unmarshal(env.Data, &list))
	assert.Len(s.T(), list, 1)

	w, _ = s.do(http.MethodDelete, "/expenses/1", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w, _ = s.do(http.MethodDelete, "/expenses/1", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestUpdateExpensePatchSemantics() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")
	s.do(http.MethodPost, "/expenses", gin.H{
		"ownerId": 1,
		"title":   "Groceries",
		"value":   42.5,
	}, "")

	// only the title is sent; value stays
	w, env := s.do(http.MethodPut, "/expenses/1", gin.H{"title": "Food"}, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var updated models.Expense
	require.NoError(s.T(), json.Unmarshal(env.Data, &updated))
	assert.Equal(s.T(), "Food", updated.Title)
	assert.Equal(s.T(), 42.5, updated.Value)

	w, _ = s.do(http.MethodPut, "/expenses/9", gin.H{"title": "Nope"}, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestUpdateExpenseIgnoresNonPositiveValue() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")
	s.do(http.MethodPost, "/expenses", gin.H{
		"ownerId": 1,
		"title":   "Groceries",
		"value":   42.5,
	}, "")

	// a non-positive value in the patch is ignored, not rejected
	w, env := s.do(http.MethodPut, "/expenses/1", gin.H{"value": -10.0}, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var updated models.Expense
	require.NoError(s.T(), json.Unmarshal(env.Data, &updated))
	assert.Equal(s.T(), 42.5, updated.Value, "non-positive update must leave the value unchanged")
}

func (s *APISuite) TestIncomeCRUD() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")

	w, _ := s.do(http.MethodPost, "/incomes", gin.H{
		"ownerId": 1,
		"title":   "Salary",
		"value":   1500.0,
	}, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/incomes", gin.H{
		"ownerId": 1,
		"title":   "Scam",
		"value":   0,
	}, "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	// silent ignore applies to incomes too
	w, env := s.do(http.MethodPut, "/incomes/1", gin.H{"value": -1.0}, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	var updated models.Income
	require.NoError(s.T(), json.Unmarshal(env.Data, &updated))
	assert.Equal(s.T(), 1500.0, updated.Value)

	w, env = s.do(http.MethodGet, "/incomes/owner/1", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	var list []models.Income
	require.NoError(s.T(), json.Unmarshal(env.Data, &list))
	assert.Len(s.T(), list, 1)

	w, _ = s.do(http.MethodDelete, "/incomes/1", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, "/incomes/1", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestExportCSV() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")
	s.do(http.MethodPost, "/expenses", gin.H{"ownerId": 1, "title": "Groceries", "value": 50.0}, "")
	s.do(http.MethodPost, "/incomes", gin.H{"ownerId": 1, "title": "Salary", "value": 1500.0}, "")

	w, _ := s.do(http.MethodGet, "/export/csv?userId=1", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(s.T(), w.Body.String(), "Groceries")
	assert.Contains(s.T(), w.Body.String(), "Salary")

	w, _ = s.do(http.MethodGet, "/export/csv?userId=9", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestExportXLSX() {
	s.register("Ann", "Lee", "ann@x.com", "secret1")
	s.do(http.MethodPost, "/expenses", gin.H{"ownerId": 1, "title": "Groceries", "value": 50.0}, "")

	w, _ := s.do(http.MethodGet, "/export/xlsx?userId=1", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(s.T(), w.Body.Len())
}
