package handler

import (
	"net/http"
	"strconv"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BalanceHandler computes per-user balance aggregates.
type BalanceHandler struct {
	DB              *gorm.DB
	DefaultCurrency string
}

func NewBalanceHandler(db *gorm.DB, defaultCurrency string) *BalanceHandler {
	if defaultCurrency == "" {
		defaultCurrency = "EUR"
	}
	return &BalanceHandler{DB: db, DefaultCurrency: defaultCurrency}
}

// sumByOwner returns the value sum for a ledger model, zero when the owner
// has no rows.
func (h *BalanceHandler) sumByOwner(model interface{}, ownerID uint) (float64, error) {
	var total float64
	err := h.DB.Model(model).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}

// GetBalance answers GET /balance?userId=&currency=. The currency tag is
// carried through untouched; no conversion happens here.
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	currency := c.Query("currency")
	if currency == "" {
		currency = h.DefaultCurrency
	}

	totalIncomes, err := h.sumByOwner(&models.Income{}, uint(userID))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to sum incomes")
		return
	}
	totalExpenses, err := h.sumByOwner(&models.Expense{}, uint(userID))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to sum expenses")
		return
	}

	balance := models.Balance{
		TotalIncomes:  totalIncomes,
		TotalExpenses: totalExpenses,
		NetBalance:    totalIncomes - totalExpenses,
		Currency:      currency,
	}

	util.Success(c, balance, "Balance calculated successfully")
}
