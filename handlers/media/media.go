// Package media issues presigned upload URLs for course media. The API
// never receives media bytes; clients PUT straight to object storage.
package media

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/coursebox/content-api/services/storage"
	"github.com/coursebox/content-api/utils/response"
)

// MediaHandler handles media upload requests
type MediaHandler struct {
	spaces   *storage.SpacesClient
	validate *validator.Validate
}

// NewMediaHandler creates a new media handler. spaces may be nil when
// object storage is not configured.
func NewMediaHandler(spaces *storage.SpacesClient) *MediaHandler {
	return &MediaHandler{
		spaces:   spaces,
		validate: validator.New(),
	}
}

// UploadURLRequest is the body of the upload URL endpoint
type UploadURLRequest struct {
	Filename string `json:"filename" validate:"required,min=1,max=255"`
	Kind     string `json:"kind" validate:"required,oneof=video audio image pdf"`
}

// UploadURLResponse carries the presigned PUT URL and the public URL the
// asset will be reachable at once uploaded
type UploadURLResponse struct {
	UploadURL   string `json:"uploadUrl"`
	PublicURL   string `json:"publicUrl"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
}

// CreateUploadURL handles POST /api/media/upload-url (admin only)
func (h *MediaHandler) CreateUploadURL(c *fiber.Ctx) error {
	if h.spaces == nil {
		return response.Error(c, fiber.StatusNotImplemented, "Media storage is not configured")
	}

	var req UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return response.BadRequest(c, "filename and kind (video, audio, image, pdf) are required")
	}

	key := storage.GenerateKey("media/"+req.Kind, req.Filename)
	contentType := storage.GetContentType(req.Filename)

	uploadURL, publicURL, err := h.spaces.PresignUpload(key, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to create upload URL")
	}

	return response.Success(c, UploadURLResponse{
		UploadURL:   uploadURL,
		PublicURL:   publicURL,
		Key:         key,
		ContentType: contentType,
	})
}
