package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"smart-money/internal/models"
	"smart-money/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler serves a user's combined ledger as a downloadable file.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ledgerRow is one export line; incomes and expenses are merged into a single
// chronological sheet.
type ledgerRow struct {
	Type        string
	Title       string
	Description string
	Value       float64
	CreatedAt   time.Time
}

func (h *ExportHandler) loadLedger(c *gin.Context) ([]ledgerRow, bool) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid user id")
		return nil, false
	}

	var owner models.User
	if err := h.DB.First(&owner, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "User not found")
		} else {
			util.Error(c, http.StatusInternalServerError, "Failed to query users")
		}
		return nil, false
	}

	var incomes []models.Income
	if err := h.DB.Where("owner_id = ?", owner.ID).Find(&incomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query incomes")
		return nil, false
	}
	var expenses []models.Expense
	if err := h.DB.Where("owner_id = ?", owner.ID).Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to query expenses")
		return nil, false
	}

	rows := make([]ledgerRow, 0, len(incomes)+len(expenses))
	for _, in := range incomes {
		rows = append(rows, ledgerRow{"income", in.Title, in.Description, in.Value, in.CreatedAt})
	}
	for _, ex := range expenses {
		rows = append(rows, ledgerRow{"expense", ex.Title, ex.Description, ex.Value, ex.CreatedAt})
	}
	return rows, true
}

// ExportCSV answers GET /export/csv?userId=.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.loadLedger(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Type", "Title", "Description", "Value", "Date"})
	for _, r := range rows {
		writer.Write([]string{
			r.Type,
			r.Title,
			r.Description,
			strconv.FormatFloat(r.Value, 'f', 2, 64),
			r.CreatedAt.Format("2006-01-02"),
		})
	}
}

// ExportXLSX answers GET /export/xlsx?userId=.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.loadLedger(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Ledger"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to create sheet")
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"Type", "Title", "Description", "Value", "Date"}
	for i, hd := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Value)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.CreatedAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to export")
	}
}
