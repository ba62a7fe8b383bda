package controllers

import (
	"net/http"
	"strconv"

	"finsight/internal/services"
	"finsight/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TransactionController struct {
	transactionService services.TransactionServiceInterface
}

func NewTransactionController(transactionService services.TransactionServiceInterface) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
	}
}

// List godoc
// @Summary List transactions, newest first
// @Tags Transactions
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions [get]
func (tc *TransactionController) List(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	txns, err := tc.transactionService.ListTransactions(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, txns, "Fetched transactions successfully")
}

// Categorize godoc
// @Summary Categorize uncategorized transactions via the advisor
// @Tags Transactions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transactions/categorize [post]
func (tc *TransactionController) Categorize(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	categorized, err := tc.transactionService.CategorizeTransactions(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"categorized": categorized}, "Categorization completed")
}
