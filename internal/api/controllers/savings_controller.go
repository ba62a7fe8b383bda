package controllers

import (
	"net/http"

	"finsight/internal/models/request_models"
	"finsight/internal/services"
	"finsight/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SavingsController struct {
	savingsService services.SavingsServiceInterface
}

func NewSavingsController(savingsService services.SavingsServiceInterface) *SavingsController {
	return &SavingsController{
		savingsService: savingsService,
	}
}

// CreateTarget godoc
// @Summary Set a savings target and generate a plan for it
// @Tags Savings
// @Accept json
// @Produce json
// @Param request body request_models.CreateSavingsTargetRequest true "Savings target payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /savings/target [post]
func (sc *SavingsController) CreateTarget(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	var req request_models.CreateSavingsTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	plan, err := sc.savingsService.CreateTarget(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Savings plan created")
}

// GetPlan godoc
// @Summary Get the active savings plan with projected savings
// @Tags Savings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /savings/plan [get]
func (sc *SavingsController) GetPlan(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	plan, err := sc.savingsService.GetPlan(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Fetched savings plan successfully")
}

// RespondToAction godoc
// @Summary Apply a user response to a plan action
// @Tags Savings
// @Accept json
// @Produce json
// @Param actionId path string true "Plan action ID"
// @Param request body request_models.RespondToActionRequest true "Response payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /savings/plan/{actionId}/respond [post]
func (sc *SavingsController) RespondToAction(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	var req request_models.RespondToActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	action, err := sc.savingsService.RespondToAction(c.Request.Context(), c.Param("actionId"), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, action, "Response recorded")
}
