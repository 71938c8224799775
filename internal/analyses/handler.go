package analyses

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voice-backend/internal/shared/config"
	"voice-backend/internal/shared/server/respond"
	"voice-backend/internal/shared/util"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
	Cfg config.Config
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, cfg config.Config) *Handler {
	return &Handler{Svc: svc, Cfg: cfg}
}

// RegisterRoutes attaches analysis routes to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/analyze", h.analyze)
	r.GET("/analysis/:analysisId", h.getAnalysis)
	r.GET("/analyses", h.listAnalyses)
}

func (h *Handler) analyze(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil || fileHeader == nil || fileHeader.Size == 0 {
		respond.Fail(c, http.StatusBadRequest, "No audio file provided")
		return
	}
	if fileHeader.Size > h.Cfg.MaxUploadBytes {
		respond.Fail(c, http.StatusBadRequest, "Audio file exceeds the 50 MB limit")
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Fail(c, http.StatusBadRequest, "Invalid file name")
		return
	}
	if !AllowedAudioExtension(fileName) {
		respond.Fail(c, http.StatusBadRequest, "Unsupported audio format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.internalError(c, err)
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		h.internalError(c, err)
		return
	}

	rec, err := h.Svc.Analyze(c.Request.Context(), AnalyzeInput{
		Audio:    audio,
		FileName: fileName,
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
	})
	if err != nil {
		if errors.Is(err, ErrNoAudio) {
			respond.Fail(c, http.StatusBadRequest, "No audio file provided")
			return
		}
		h.internalError(c, err)
		return
	}

	c.Set("analysisId", rec.ID)
	respond.OK(c, gin.H{
		"analysisId":     rec.ID,
		"userData":       rec.UserData,
		"analysis":       rec.Analysis,
		"questions":      rec.Questions,
		"processingTime": rec.ProcessingTimeMs,
		"timestamp":      rec.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	id := c.Param("analysisId")

	rec, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Fail(c, http.StatusNotFound, "Analysis not found")
			return
		}
		h.internalError(c, err)
		return
	}

	respond.OK(c, rec)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		respond.Fail(c, http.StatusBadRequest, "Email query parameter is required")
		return
	}

	recs, err := h.Svc.ListByEmail(c.Request.Context(), email)
	if err != nil {
		h.internalError(c, err)
		return
	}

	items := make([]gin.H, 0, len(recs))
	for _, rec := range recs {
		items = append(items, gin.H{
			"analysisId":     rec.ID,
			"userData":       rec.UserData,
			"status":         rec.Status,
			"processingTime": rec.ProcessingTimeMs,
			"createdAt":      rec.CreatedAt,
			"updatedAt":      rec.UpdatedAt,
		})
	}

	respond.OK(c, items)
}

// internalError reports a generic 500, exposing the underlying message only
// in development-mode configuration.
func (h *Handler) internalError(c *gin.Context, err error) {
	detail := ""
	if h.Cfg.IsDevLike() {
		detail = err.Error()
	}
	respond.FailWithDetail(c, http.StatusInternalServerError, "Failed to process audio analysis", detail)
}
