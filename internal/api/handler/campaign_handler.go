package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// CampaignHandler handles marketing campaigns.
type CampaignHandler struct {
	campaignService ports.CampaignService
}

func NewCampaignHandler(campaignService ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

type campaignRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"  validate:"required"`
	EndDate     time.Time `json:"end_date"    validate:"required,gtfield=StartDate"`
	Status      string    `json:"status"      validate:"omitempty,oneof=draft active completed"`
}

func (r campaignRequest) toInput() ports.CampaignInput {
	return ports.CampaignInput{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Status:      domain.CampaignStatus(r.Status),
	}
}

// Create adds a campaign credited to the caller.
//
// @Summary      Create a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      campaignRequest  true  "Campaign details"
// @Success      201   {object}  domain.Campaign
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req campaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaignService.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, campaign)
}

// List returns all campaigns, newest start date first.
//
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Campaign
// @Router       /api/campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	campaigns, err := h.campaignService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if campaigns == nil {
		campaigns = []*domain.Campaign{}
	}
	return c.JSON(http.StatusOK, campaigns)
}

// Get returns one campaign.
//
// @Summary      Get a campaign
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  domain.Campaign
// @Failure      404  {object}  errorResponse
// @Router       /api/campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.campaignService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Update replaces the writable fields of a campaign.
//
// @Summary      Update a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Campaign id"
// @Param        body  body      campaignRequest  true  "Campaign details"
// @Success      200   {object}  domain.Campaign
// @Failure      404   {object}  errorResponse
// @Router       /api/campaigns/{id} [put]
func (h *CampaignHandler) Update(c echo.Context) error {
	var req campaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaignService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Delete removes a campaign.
//
// @Summary      Delete a campaign
// @Tags         campaigns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Campaign id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	if err := h.campaignService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "campaign deleted"})
}
