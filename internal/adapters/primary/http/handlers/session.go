package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"csv-insight-service/internal/adapters/primary/http/dto"
	"csv-insight-service/internal/adapters/primary/http/middleware"
	"csv-insight-service/internal/core/domain"
)

// ============================================================================
// Upload / Ask
// ============================================================================

// Upload stores the file as the session dataset and, when a question is
// sent along, answers it right away.
func (h *Handler) Upload(c *gin.Context) {
	// leave room for the multipart envelope and the question field
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			mapDomainError(c, domain.ErrUploadTooLarge)
			return
		}
		mapDomainError(c, domain.ErrMissingFile)
		return
	}
	if header.Size > h.maxUploadBytes {
		mapDomainError(c, fmt.Errorf("%w: %d bytes, limit %d", domain.ErrUploadTooLarge, header.Size, h.maxUploadBytes))
		return
	}

	f, err := header.Open()
	if err != nil {
		mapDomainError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		mapDomainError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	ctx := c.Request.Context()
	session, err := h.sessionSvc.Upload(ctx, h.sessionID(c), header.Filename, content)
	if err != nil {
		log.WithError(err).WithField("file", header.Filename).Warn("upload rejected")
		mapDomainError(c, err)
		return
	}
	h.setSession(c, session.ID)

	log.WithFields(log.Fields{
		"session_id": session.ID,
		"file":       session.FileName,
		"rows":       session.Dataset.Len(),
	}).Info("dataset uploaded")

	resp := dto.InsightResponse{
		SessionID: session.ID.String(),
		Preview:   h.sessionSvc.Preview(session),
	}

	if question := strings.TrimSpace(c.PostForm("question")); question != "" {
		result := h.pipelineSvc.Ask(ctx, session.Dataset, question)
		answer := dto.ToInsightResponse(session.ID.String(), result, h.chartURL(result.ChartFileName))
		answer.Preview = resp.Preview
		resp = answer
	}

	c.JSON(http.StatusOK, resp)
}

// Ask answers a follow-up question against the dataset already in the session.
func (h *Handler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		mapDomainError(c, domain.ErrEmptyQuestion)
		return
	}

	id := h.sessionID(c)
	dataset, err := h.sessionSvc.Dataset(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	result := h.pipelineSvc.Ask(c.Request.Context(), dataset, question)
	c.JSON(http.StatusOK, dto.ToInsightResponse(id.String(), result, h.chartURL(result.ChartFileName)))
}

// ============================================================================
// Session
// ============================================================================

func (h *Handler) Reset(c *gin.Context) {
	if err := h.sessionSvc.Reset(c.Request.Context(), h.sessionID(c)); err != nil {
		mapDomainError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.sessionSvc.Get(c.Request.Context(), h.sessionID(c))
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(session, h.sessionSvc.Preview(session)))
}

// sessionID reads the session cookie. A missing or malformed cookie yields uuid.Nil.
func (h *Handler) sessionID(c *gin.Context) uuid.UUID {
	raw, err := c.Cookie(h.cookie.Name)
	if err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	c.Set(middleware.KeySessionID, id.String())
	return id
}

func (h *Handler) setSession(c *gin.Context, id uuid.UUID) {
	c.Set(middleware.KeySessionID, id.String())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, id.String(), int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

func (h *Handler) chartURL(fileName string) string {
	if fileName == "" {
		return ""
	}
	return path.Join(h.chartRoute, fileName)
}
