package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/remixrite/remix-ledger/internal/api/middleware"
	"github.com/remixrite/remix-ledger/internal/api/shared/constants"
	"github.com/remixrite/remix-ledger/internal/api/shared/dto"
	apierrors "github.com/remixrite/remix-ledger/internal/api/shared/errors"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/remix"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// CreateRemix registers a remix of existing clips and settles its royalties
	// POST /api/v1/remix
	CreateRemix(c *gin.Context)

	// ListRemixes lists enriched remixes, optionally filtered by creator
	// GET /api/v1/remix?creator=<creator_id>
	ListRemixes(c *gin.Context)

	// GetRemix retrieves one enriched remix
	// GET /api/v1/remix/:id
	GetRemix(c *gin.Context)

	// UploadClip uploads and registers an original clip
	// POST /api/v1/clips (multipart: file, title, description, artist, duration, ownerAddress)
	UploadClip(c *gin.Context)

	// GetClip retrieves one clip
	// GET /api/v1/clips/:id
	GetClip(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	service remix.Service
}

// NewHandler creates a new REST API handler
func NewHandler(service remix.Service) Handler {
	return &handler{service: service}
}

// CreateRemix registers a remix of existing clips
func (h *handler) CreateRemix(c *gin.Context) {
	var req dto.CreateRemixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	// A JWT subject stands in for a missing creator id
	if strings.TrimSpace(req.CreatorID) == "" {
		req.CreatorID = middleware.AuthSubject(c)
	}

	result, err := h.service.CreateRemix(c.Request.Context(), req.ToInput())
	if err != nil {
		var partial *domain.PartialSettlementError
		if errors.As(err, &partial) && result != nil {
			status, apiErr := apierrors.FromDomainError(err)
			c.JSON(status, dto.NewIncompleteRemixResponse(result, partial, apiErr))
			return
		}

		respondServiceError(c, err, "create_remix")
		return
	}

	c.JSON(http.StatusOK, dto.RemixResponse{Success: true, Remix: result})
}

// ListRemixes lists enriched remixes, newest first
func (h *handler) ListRemixes(c *gin.Context) {
	params, err := ParseListRemixesQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	remixes, err := h.service.ListRemixes(c.Request.Context(), params.Creator)
	if err != nil {
		respondServiceError(c, err, "list_remixes")
		return
	}

	c.JSON(http.StatusOK, dto.RemixListResponse{Success: true, Remixes: remixes})
}

// GetRemix retrieves one enriched remix
func (h *handler) GetRemix(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondBadRequest(c, "Remix ID is required")
		return
	}

	result, err := h.service.GetRemix(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get_remix")
		return
	}

	c.JSON(http.StatusOK, dto.RemixResponse{Success: true, Remix: result})
}

// UploadClip uploads and registers an original clip
func (h *handler) UploadClip(c *gin.Context) {
	var form dto.UploadClipForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, "Invalid form data", err.Error())
		return
	}

	if err := form.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	fileHeader, err := c.FormFile(constants.CLIP_FILE_FORM_FIELD)
	if err != nil {
		respondValidationError(c, apierrors.NewValidationError("file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "Failed to read uploaded file", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondBadRequest(c, "Failed to read uploaded file", err.Error())
		return
	}

	clip, err := h.service.UploadClip(c.Request.Context(), form.ToInput(fileHeader.Filename, data))
	if err != nil {
		respondServiceError(c, err, "upload_clip")
		return
	}

	c.JSON(http.StatusOK, dto.ClipResponse{Success: true, Clip: clip})
}

// GetClip retrieves one clip
func (h *handler) GetClip(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondBadRequest(c, "Clip ID is required")
		return
	}

	clip, err := h.service.GetClip(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get_clip")
		return
	}

	c.JSON(http.StatusOK, dto.ClipResponse{Success: true, Clip: clip})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    constants.HEALTH_STATUS_HEALTHY,
		Service:   domain.PLATFORM_NAME,
		Timestamp: time.Now().UTC(),
	})
}
