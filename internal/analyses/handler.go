package analyses

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/documents"
	"resume-insight/internal/shared/server/middleware"
	"resume-insight/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses/text", h.analyzeText)
	rg.POST("/documents/:id/analyze", h.analyzeDocument)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

type analyzeTextRequest struct {
	Text           string `json:"text"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	analysis, err := h.Svc.AnalyzeText(c.Request.Context(), userID, req.Text, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(analysis))
}

type analyzeDocumentRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")
	if documentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
		return
	}

	var req analyzeDocumentRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	analysis, err := h.Svc.AnalyzeDocument(c.Request.Context(), userID, documentID, req.JobDescription)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(analysis))
}

func (h *Handler) getAnalysis(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return
	}

	analysis, err := h.Svc.Get(c.Request.Context(), userID, analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(analysis))
}

func (h *Handler) listAnalyses(c *gin.Context) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
			return
		}
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]gin.H, 0, len(analyses))
	for _, a := range analyses {
		item := gin.H{
			"analysisId": a.ID,
			"status":     a.Status,
			"createdAt":  a.CreatedAt,
		}
		if a.DocumentID != "" {
			item["documentId"] = a.DocumentID
		}
		if a.Result != nil {
			item["healthScore"] = a.Result.HealthScore
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func toResponse(a Analysis) gin.H {
	resp := gin.H{
		"analysisId": a.ID,
		"status":     a.Status,
		"createdAt":  a.CreatedAt,
	}
	if a.DocumentID != "" {
		resp["documentId"] = a.DocumentID
	}
	if a.CompletedAt != nil {
		resp["completedAt"] = a.CompletedAt
	}
	if a.Result != nil {
		resp["result"] = a.Result
	}
	return resp
}
