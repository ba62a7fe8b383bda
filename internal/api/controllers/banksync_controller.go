package controllers

import (
	"finsight/internal/services"
	"finsight/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BankSyncController struct {
	bankSyncService services.BankSyncServiceInterface
}

func NewBankSyncController(bankSyncService services.BankSyncServiceInterface) *BankSyncController {
	return &BankSyncController{
		bankSyncService: bankSyncService,
	}
}

// Sync godoc
// @Summary Pull new transactions for a bank account from the provider
// @Tags BankAccounts
// @Produce json
// @Param id path string true "Bank account ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /bank-accounts/{id}/sync [post]
func (bc *BankSyncController) Sync(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	imported, err := bc.bankSyncService.SyncBankAccount(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"imported": imported}, "Sync completed")
}
