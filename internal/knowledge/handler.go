package knowledge

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/shared/server/respond"
)

// Handler serves read-only catalog endpoints.
type Handler struct {
	Catalog *Catalog
}

// NewHandler constructs a Handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{Catalog: catalog}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.listRoles)
	rg.GET("/roles/:name", h.getRole)
	rg.GET("/categories", h.listCategories)
	rg.GET("/categories/:category/roles", h.listRolesByCategory)
}

type roleSummary struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type roleDetail struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Skills         []string `json:"skills"`
	CriticalSkills []string `json:"criticalSkills"`
	Tools          []string `json:"tools"`
	SoftSkills     []string `json:"softSkills"`
	Certifications []string `json:"certifications"`
	Keywords       []string `json:"keywords"`
}

func toSummaries(roles []RoleProfile) []roleSummary {
	out := make([]roleSummary, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleSummary{Name: role.Name, Category: role.Category})
	}
	return out
}

func toDetail(role RoleProfile) roleDetail {
	detail := roleDetail{
		Name:           role.Name,
		Category:       role.Category,
		Skills:         make([]string, 0, len(role.Skills)),
		CriticalSkills: []string{},
		Tools:          append([]string{}, role.Tools...),
		SoftSkills:     append([]string{}, role.SoftSkills...),
		Certifications: append([]string{}, role.Certifications...),
		Keywords:       append([]string{}, role.Keywords...),
	}
	for _, req := range role.Skills {
		detail.Skills = append(detail.Skills, req.ID)
		if req.Tier == TierCritical {
			detail.CriticalSkills = append(detail.CriticalSkills, req.ID)
		}
	}
	return detail
}

func (h *Handler) listRoles(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"roles": toSummaries(h.Catalog.Roles()),
		"total": len(h.Catalog.Roles()),
	})
}

func (h *Handler) getRole(c *gin.Context) {
	role, err := h.Catalog.RoleByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load role", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toDetail(role))
}

func (h *Handler) listCategories(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"categories": h.Catalog.Categories(),
	})
}

func (h *Handler) listRolesByCategory(c *gin.Context) {
	roles := h.Catalog.RolesByCategory(c.Param("category"))
	respond.JSON(c, http.StatusOK, gin.H{
		"category": c.Param("category"),
		"roles":    toSummaries(roles),
		"total":    len(roles),
	})
}
