package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"csv-insight-service/internal/core/services"
)

// SessionCookie describes the cookie that carries the session id.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type Handler struct {
	pipelineSvc    *services.PipelineService
	sessionSvc     *services.SessionService
	cookie         SessionCookie
	chartRoute     string
	maxUploadBytes int64
}

func New(
	pipelineSvc *services.PipelineService,
	sessionSvc *services.SessionService,
	cookie SessionCookie,
	chartRoute string,
	maxUploadBytes int64,
) *Handler {
	return &Handler{
		pipelineSvc:    pipelineSvc,
		sessionSvc:     sessionSvc,
		cookie:         cookie,
		chartRoute:     chartRoute,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/upload", h.Upload)
	r.POST("/ask", h.Ask)
	r.POST("/reset", h.Reset)
	r.GET("/session", h.GetSession)
}
