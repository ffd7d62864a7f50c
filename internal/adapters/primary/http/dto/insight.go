package dto

import (
	"time"

	"csv-insight-service/internal/core/domain"
)

// ============================================================================
// Request DTOs
// ============================================================================

// AskRequest carries a follow-up question. Accepted as form or JSON.
type AskRequest struct {
	Question string `form:"question" json:"question"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// InsightResponse is returned by upload and ask. Preview is only set on upload.
type InsightResponse struct {
	SessionID     string `json:"session_id"`
	Preview       string `json:"preview,omitempty"`
	Response      string `json:"response"`
	HasChart      bool   `json:"has_chart"`
	ChartFileName string `json:"chart_file_name,omitempty"`
	ChartURL      string `json:"chart_url,omitempty"`
	Outcome       string `json:"outcome,omitempty"`
}

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	FileName  string    `json:"file_name"`
	Rows      int       `json:"rows"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
}

// ToInsightResponse maps a pipeline result. chartURL is resolved by the caller
// because it depends on where charts are mounted.
func ToInsightResponse(sessionID string, result domain.PipelineResult, chartURL string) InsightResponse {
	resp := InsightResponse{
		SessionID: sessionID,
		Response:  result.DisplayText,
		HasChart:  result.HasChart,
		Outcome:   string(result.Outcome),
	}
	if result.HasChart {
		resp.ChartFileName = result.ChartFileName
		resp.ChartURL = chartURL
	}
	return resp
}

func ToSessionResponse(s *domain.Session, preview string) SessionResponse {
	return SessionResponse{
		SessionID: s.ID.String(),
		FileName:  s.FileName,
		Rows:      s.Dataset.Len(),
		Preview:   preview,
		CreatedAt: s.CreatedAt,
	}
}
