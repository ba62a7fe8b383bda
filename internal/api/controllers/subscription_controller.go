package controllers

import (
	"net/http"

	"finsight/internal/services"
	"finsight/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// Detect godoc
// @Summary Detect recurring subscriptions from transaction history
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/detect [post]
func (sc *SubscriptionController) Detect(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	detected, err := sc.subscriptionService.DetectSubscriptions(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"detected": detected}, "Detection completed")
}

// List godoc
// @Summary List detected subscriptions with monthly and annual totals
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (sc *SubscriptionController) List(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	result, err := sc.subscriptionService.ListSubscriptions(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Fetched subscriptions successfully")
}

// Cancel godoc
// @Summary Mark a subscription as cancelled
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/{id}/cancel [post]
func (sc *SubscriptionController) Cancel(c *gin.Context) {
	accountID, ok := requireAccountID(c)
	if !ok {
		return
	}

	sub, err := sc.subscriptionService.CancelSubscription(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, "Subscription cancelled")
}

func requireAccountID(c *gin.Context) (uuid.UUID, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return uuid.Nil, false
	}

	accountID, err := uuid.Parse(userID)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is invalid")
		return uuid.Nil, false
	}
	return accountID, true
}
