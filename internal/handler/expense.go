package handler

import (
	"net/http"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExpenseHandler owns the expense CRUD endpoints.
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

type createExpenseReq struct {
	OwnerID     uint    `json:"ownerId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Value       float64 `json:"value" binding:"required"`
}

// updateExpenseReq has patch semantics: nil fields are left untouched.
type updateExpenseReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Value       *float64 `json:"value"`
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	var expenses []models.Expense
	if err := h.DB.Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query expenses")
		return
	}
	util.Success(c, expenses, "Expenses fetched successfully")
}

func (h *ExpenseHandler) ListExpensesByOwner(c *gin.Context) {
	ownerID, ok := parseOwnerIDParam(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := h.DB.Where("owner_id = ?", ownerID).Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query expenses")
		return
	}
	util.Success(c, expenses, "Expenses for user fetched successfully")
}

func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var expense models.Expense
	if err := h.DB.First(&expense, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Expense not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query expenses")
		}
		return
	}
	util.Success(c, expense, "Expense found")
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Value <= 0 {
		util.Error(c, http.StatusBadRequest, "Value must be positive")
		return
	}

	var owner models.User
	if err := h.DB.First(&owner, req.OwnerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusBadRequest, "Owner not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return
	}

	expense := models.Expense{
		Title:       req.Title,
		Description: req.Description,
		Value:       req.Value,
		OwnerID:     owner.ID,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	util.Success(c, expense, "Expense created successfully")
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var expense models.Expense
	if err := h.DB.First(&expense, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Expense not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query expenses")
		}
		return
	}

	if req.Title != nil {
		expense.Title = *req.Title
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	// non-positive values are ignored, not rejected: the stored value stays
	if req.Value != nil && *req.Value > 0 {
		expense.Value = *req.Value
	}

	if err := h.DB.Save(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	util.Success(c, expense, "Expense updated successfully")
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	res := h.DB.Delete(&models.Expense{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Expense not found")
		return
	}

	util.Success(c, nil, "Expense deleted successfully")
}
