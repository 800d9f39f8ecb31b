package handler

import (
	"net/http"
	"strconv"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IncomeHandler owns the income CRUD endpoints. Same contract shape as
// ExpenseHandler.
type IncomeHandler struct {
	DB *gorm.DB
}

func NewIncomeHandler(db *gorm.DB) *IncomeHandler {
	return &IncomeHandler{DB: db}
}

type createIncomeReq struct {
	OwnerID     uint    `json:"ownerId" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Value       float64 `json:"value" binding:"required"`
}

// updateIncomeReq has patch semantics: nil fields are left untouched.
type updateIncomeReq struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Value       *float64 `json:"value"`
}

func parseOwnerIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("ownerId"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid owner id")
		return 0, false
	}
	return uint(id), true
}

func (h *IncomeHandler) ListIncomes(c *gin.Context) {
	var incomes []models.Income
	if err := h.DB.Find(&incomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query incomes")
		return
	}
	util.Success(c, incomes, "Incomes fetched successfully")
}

func (h *IncomeHandler) ListIncomesByOwner(c *gin.Context) {
	ownerID, ok := parseOwnerIDParam(c)
	if !ok {
		return
	}

	var incomes []models.Income
	if err := h.DB.Where("owner_id = ?", ownerID).Find(&incomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query incomes")
		return
	}
	util.Success(c, incomes, "Incomes for user fetched successfully")
}

func (h *IncomeHandler) GetIncomeByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var income models.Income
	if err := h.DB.First(&income, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Income not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query incomes")
		}
		return
	}
	util.Success(c, income, "Income found")
}

func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	var req createIncomeReq
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

	income := models.Income{
		Title:       req.Title,
		Description: req.Description,
		Value:       req.Value,
		OwnerID:     owner.ID,
	}
	if err := h.DB.Create(&income).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create income")
		return
	}

	util.Success(c, income, "Income created successfully")
}

func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateIncomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var income models.Income
	if err := h.DB.First(&income, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Income not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query incomes")
		}
		return
	}

	if req.Title != nil {
		income.Title = *req.Title
	}
	if req.Description != nil {
		income.Description = *req.Description
	}
	// non-positive values are ignored, not rejected: the stored value stays
	if req.Value != nil && *req.Value > 0 {
		income.Value = *req.Value
	}

	if err := h.DB.Save(&income).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to update income")
		return
	}

	util.Success(c, income, "Income updated successfully")
}

func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	res := h.DB.Delete(&models.Income{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to delete income")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Income not found")
		return
	}

	util.Success(c, nil, "Income deleted successfully")
}
