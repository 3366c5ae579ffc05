package handler

import (
	integrationapp "github.com/dukkan/backoffice/internal/application/integration"
	"github.com/gin-gonic/gin"
)

// SettingsHandler manages the singleton integration settings
type SettingsHandler struct {
	BaseHandler
	settingsService *integrationapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *integrationapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateAdCredentialsRequest stores ad-platform credentials
type UpdateAdCredentialsRequest struct {
	AdAccountID   string `json:"ad_account_id" binding:"required"`
	AdAccessToken string `json:"ad_access_token" binding:"required"`
}

// Get godoc
// @Summary      Get integration settings
// @Description  Returns the ad account and whether a token is configured. The token itself is never echoed.
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=integrationapp.SettingsResponse}
// @Router       /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// UpdateAdCredentials godoc
// @Summary      Set ad-platform credentials
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body UpdateAdCredentialsRequest true "Credentials"
// @Success      204 "No Content"
// @Router       /settings/ad-credentials [put]
func (h *SettingsHandler) UpdateAdCredentials(c *gin.Context) {
	var req UpdateAdCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "ad_account_id and ad_access_token are required")
		return
	}

	err := h.settingsService.UpdateAdCredentials(c.Request.Context(), req.AdAccountID, req.AdAccessToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
