package media

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/datejar/internal/jar"
	"github.com/xyz-asif/datejar/internal/pkg/cloudinary"
	"github.com/xyz-asif/datejar/internal/pkg/response"
)

type Handler struct {
	cloudinary *cloudinary.Service
	ctrl       *jar.Controller
}

func NewHandler(cld *cloudinary.Service, ctrl *jar.Controller) *Handler {
	return &Handler{cloudinary: cld, ctrl: ctrl}
}

// Upload godoc
// @Summary Upload an idea image
// @Description Upload an image and optionally attach it to an idea via the ideaId form field
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image to upload"
// @Param ideaId formData string false "Idea to attach the image to"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /media/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if h.cloudinary == nil {
		response.ServiceUnavailable(c, "Image storage is not configured", "MEDIA_DISABLED")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}
	defer file.Close()

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	result, err := h.cloudinary.UploadImage(c.Request.Context(), file, header.Filename)
	if err != nil {
		response.InternalServerError(c, "Failed to upload file", "UPLOAD_FAILED")
		return
	}

	// Attach to the idea when requested; the upload survives either way.
	if ideaID := c.PostForm("ideaId"); ideaID != "" {
		imageID := result.PublicID
		if _, err := h.ctrl.UpdateIdea(c.Request.Context(), ideaID, jar.IdeaPatch{ImageID: &imageID}); err != nil {
			response.NotFound(c, "Idea not found")
			return
		}
	}

	response.Success(c, gin.H{
		"publicId":    result.PublicID,
		"url":         result.URL,
		"width":       result.Width,
		"height":      result.Height,
		"downloadUrl": h.cloudinary.DownloadURL(result.PublicID),
	})
}

// URLs godoc
// @Summary Resolve image URLs
// @Description Return the view and download URLs for a stored image id
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id query string true "Image public id"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /media/urls [get]
func (h *Handler) URLs(c *gin.Context) {
	if h.cloudinary == nil {
		response.ServiceUnavailable(c, "Image storage is not configured", "MEDIA_DISABLED")
		return
	}

	publicID := c.Query("id")
	if publicID == "" {
		response.BadRequest(c, "id is required", "MISSING_PARAM")
		return
	}

	response.Success(c, gin.H{
		"viewUrl":     h.cloudinary.ViewURL(publicID),
		"downloadUrl": h.cloudinary.DownloadURL(publicID),
	})
}

// Delete godoc
// @Summary Delete a stored image
// @Tags media
// @Produce json
// @Security BearerAuth
// @Param id query string true "Image public id"
// @Success 200 {object} response.SuccessResponse
// @Router /media/ [delete]
func (h *Handler) Delete(c *gin.Context) {
	if h.cloudinary == nil {
		response.ServiceUnavailable(c, "Image storage is not configured", "MEDIA_DISABLED")
		return
	}

	publicID := c.Query("id")
	if publicID == "" {
		response.BadRequest(c, "id is required", "MISSING_PARAM")
		return
	}

	if err := h.cloudinary.Delete(c.Request.Context(), publicID); err != nil {
		response.InternalServerError(c, "Failed to delete image", "DELETE_FAILED")
		return
	}
	response.Success(c, gin.H{"message": "Image deleted"})
}
