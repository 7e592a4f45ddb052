package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/api/metrics"
	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// ResourceHandler handles uploaded learning resources.
type ResourceHandler struct {
	resourceService ports.ResourceService
}

func NewResourceHandler(resourceService ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// Upload stores a file plus its metadata. Multipart form: "file" part plus
// "title" and optional "description" fields.
//
// @Summary      Upload a resource
// @Tags         resources
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file         formData  file    true   "File content"
// @Param        title        formData  string  true   "Resource title"
// @Param        description  formData  string  false  "Resource description"
// @Success      201          {object}  domain.Resource
// @Failure      400          {object}  errorResponse
// @Failure      413          {object}  errorResponse
// @Router       /api/resources [post]
func (h *ResourceHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	resource, err := h.resourceService.Upload(c.Request().Context(), actor, ports.UploadResourceInput{
		Title:       title,
		Description: c.FormValue("description"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     src,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	metrics.UploadBytes.Observe(float64(resource.SizeBytes))
	return c.JSON(http.StatusCreated, resource)
}

// List returns all resource metadata, newest first.
//
// @Summary      List resources
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Resource
// @Router       /api/resources [get]
func (h *ResourceHandler) List(c echo.Context) error {
	resources, err := h.resourceService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if resources == nil {
		resources = []*domain.Resource{}
	}
	return c.JSON(http.StatusOK, resources)
}

// Get returns one resource's metadata.
//
// @Summary      Get a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource id"
// @Success      200  {object}  domain.Resource
// @Failure      404  {object}  errorResponse
// @Router       /api/resources/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	resource, err := h.resourceService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resource)
}

// Delete removes a resource and its stored file.
//
// @Summary      Delete a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/resources/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	if err := h.resourceService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "resource deleted"})
}
