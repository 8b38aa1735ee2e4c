package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chamathdew/hiruayurvedaresorts/internal/api/metrics"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/ports"
)

// FileStore abstracts the local upload directory.
type FileStore interface {
	Save(fh *multipart.FileHeader) (path string, mimeType string, err error)
	Remove(path string) error
}

// GuestHandler handles HTTP requests for guest records and document extraction.
type GuestHandler struct {
	service   ports.GuestService
	extractor ports.DocumentExtractor
	store     FileStore
}

func NewGuestHandler(service ports.GuestService, extractor ports.DocumentExtractor, store FileStore) *GuestHandler {
	return &GuestHandler{service: service, extractor: extractor, store: store}
}

// Create handles POST /guests. The body is a multipart form so the desk can
// attach a passport copy in the same request; the file part is optional.
//
// @Summary      Register a guest
// @Tags         guests
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        fullName     formData  string  true   "Guest full name"
// @Param        hotelBranch  formData  string  true   "Branch name"
// @Param        passportCopy formData  file    false  "Passport copy"
// @Success      201  {object}  domain.Guest
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /guests [post]
func (h *GuestHandler) Create(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var form createGuestForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// Optional passport copy: retained on disk and referenced by path.
	var passportCopyURL string
	if fh, err := c.FormFile("passportCopy"); err == nil && fh != nil {
		path, _, err := h.store.Save(fh)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		passportCopyURL = path
	}

	guest, err := h.service.Create(c.Request().Context(), caller, toCreateInput(form, passportCopyURL))
	if err != nil {
		// The record never landed; do not keep an orphaned upload.
		if passportCopyURL != "" {
			_ = h.store.Remove(passportCopyURL)
		}
		return err
	}

	metrics.GuestsCreatedTotal.WithLabelValues(guest.HotelBranch).Inc()
	return c.JSON(http.StatusCreated, guest)
}

// List handles GET /guests — the collection visible to the caller's branch scope.
//
// @Summary      List visible guests
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Guest
// @Failure      401  {object}  errorResponse
// @Router       /guests [get]
func (h *GuestHandler) List(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	guests, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guests)
}

// Stats handles GET /guests/stats — the dashboard aggregate.
//
// @Summary      Dashboard statistics
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.GuestStats
// @Failure      401  {object}  errorResponse
// @Router       /guests/stats [get]
func (h *GuestHandler) Stats(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Get handles GET /guests/:id. Branch-scoped callers cannot see records of
// other branches; such lookups report NotFound.
//
// @Summary      Get a guest by id
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Guest id"
// @Success      200  {object}  domain.Guest
// @Failure      404  {object}  errorResponse
// @Router       /guests/{id} [get]
func (h *GuestHandler) Get(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	guest, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guest)
}

// Update handles PUT /guests/:id with a JSON partial update. Balance and
// payment status are recomputed server-side on every write.
//
// @Summary      Update a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Guest id"
// @Param        body  body      updateGuestRequest  true  "Fields to change"
// @Success      200   {object}  domain.Guest
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /guests/{id} [put]
func (h *GuestHandler) Update(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateGuestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	guest, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guest)
}

// Delete handles DELETE /guests/:id. Administrator only.
//
// @Summary      Delete a guest
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Guest id"
// @Success      200  {object}  deletedResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /guests/{id} [delete]
func (h *GuestHandler) Delete(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletedResponse{Message: "guest has been deleted"})
}

// Extract handles POST /guests/extract: runs the uploaded document through
// the external vision model and returns the field set for human review. The
// temporary upload is removed after the call on every path.
//
// @Summary      Extract form fields from a document
// @Tags         guests
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        document  formData  file    true   "Passport or declaration form"
// @Param        docType   formData  string  false  "passport or handwritten"
// @Success      200  {object}  extractResponse
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /guests/extract [post]
func (h *GuestHandler) Extract(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	fh, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no document attached")
	}

	docType := c.FormValue("docType")
	if docType == "" {
		docType = ports.DocTypePassport
	}

	path, mimeType, err := h.store.Save(fh)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	defer func() { _ = h.store.Remove(path) }()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	start := time.Now()
	fields, err := h.extractor.Extract(c.Request().Context(), data, mimeType, docType)
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrExtractorNotConfigured):
			metrics.ExtractionsTotal.WithLabelValues(docType, "not_configured").Inc()
		case errors.Is(err, ports.ErrExtractionFailed):
			metrics.ExtractionsTotal.WithLabelValues(docType, "parse_error").Inc()
		default:
			metrics.ExtractionsTotal.WithLabelValues(docType, "error").Inc()
		}
		return err
	}

	metrics.ExtractionsTotal.WithLabelValues(docType, "success").Inc()
	return c.JSON(http.StatusOK, extractResponse{Success: true, ExtractedData: fields})
}
