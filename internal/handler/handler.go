package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spyyy004/designbuddy/internal/config"
	"github.com/Spyyy004/designbuddy/internal/domain"
	"github.com/Spyyy004/designbuddy/internal/service"
	"github.com/Spyyy004/designbuddy/pkg/utils"
)

type Handler struct {
	service service.CaseStudyService
	cfg     *config.AppConfig
	log     *zap.Logger
}

func NewHandler(service service.CaseStudyService, cfg *config.AppConfig, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		log:     log,
	}
}

// Upload handles POST /upload: 1-3 image parts under "images" plus optional
// thoughtProcess / resultAchieved text fields. All validation happens before
// any network I/O.
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.log.Error("Failed to parse multipart form", zap.Error(err))
		c.JSON(http.StatusBadRequest, domain.ErrorResult{Error: "No files uploaded."})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, domain.ErrorResult{Error: "No files uploaded."})
		return
	}
	if len(files) > h.cfg.MaxFiles {
		c.JSON(http.StatusBadRequest, domain.ErrorResult{Error: "Too many files uploaded."})
		return
	}

	req := &domain.UploadRequest{
		Files:          make([]domain.UploadedFile, 0, len(files)),
		ThoughtProcess: c.PostForm("thoughtProcess"),
		ResultAchieved: c.PostForm("resultAchieved"),
	}

	for _, file := range files {
		if file.Size > h.cfg.MaxFileSize {
			c.JSON(http.StatusBadRequest, domain.ErrorResult{Error: "File too large."})
			return
		}

		src, err := file.Open()
		if err != nil {
			h.log.Error("Failed to open uploaded file",
				zap.String("filename", file.Filename),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, domain.ErrorResult{Error: "Internal server error."})
			return
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			h.log.Error("Failed to read uploaded file",
				zap.String("filename", file.Filename),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, domain.ErrorResult{Error: "Internal server error."})
			return
		}

		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = utils.ContentTypeForFilename(file.Filename)
		}

		req.Files = append(req.Files, domain.UploadedFile{
			OriginalName: file.Filename,
			ContentType:  contentType,
			Size:         int64(len(data)),
			Data:         data,
		})
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoFiles):
		c.JSON(http.StatusBadRequest, domain.ErrorResult{Error: "No files uploaded."})
	case errors.Is(err, domain.ErrStorage):
		h.log.Error("File upload error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.ErrorResult{Error: "Failed to upload file."})
	case errors.Is(err, domain.ErrCompletion):
		h.log.Error("Case study generation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.ErrorResult{Error: "Failed to generate case study."})
	default:
		h.log.Error("Unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.ErrorResult{Error: "Internal server error."})
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
