package knowledge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

const handlerCatalogJSON = `{
	"skills": [
		{"id": "python", "category": "technical"}
	],
	"roles": [
		{
			"name": "Data Engineer",
			"category": "Technology",
			"skills": [{"id": "python", "tier": "critical"}, {"id": "sql"}],
			"tools": ["airflow"],
			"keywords": ["pipeline", "etl", "warehouse"]
		},
		{
			"name": "Financial Analyst",
			"category": "Finance",
			"skills": [{"id": "excel"}],
			"keywords": ["modeling", "forecasting"]
		}
	]
}`

func newCatalogRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := ParseCatalog([]byte(handlerCatalogJSON))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}

	router := gin.New()
	NewHandler(catalog).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if out != nil && resp.Code == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.Code
}

func TestListRolesEndpoint(t *testing.T) {
	router := newCatalogRouter(t)

	var got struct {
		Roles []struct {
			Name     string `json:"name"`
			Category string `json:"category"`
		} `json:"roles"`
		Total int `json:"total"`
	}
	if code := getJSON(t, router, "/api/v1/roles", &got); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got.Total != 2 || len(got.Roles) != 2 {
		t.Fatalf("expected two roles, got %+v", got)
	}
	// Catalog order is alphabetical by name.
	if got.Roles[0].Name != "Data Engineer" {
		t.Fatalf("unexpected first role: %s", got.Roles[0].Name)
	}
}

func TestGetRoleEndpoint(t *testing.T) {
	router := newCatalogRouter(t)

	var got struct {
		Name           string   `json:"name"`
		Skills         []string `json:"skills"`
		CriticalSkills []string `json:"criticalSkills"`
		Tools          []string `json:"tools"`
		Keywords       []string `json:"keywords"`
	}
	if code := getJSON(t, router, "/api/v1/roles/data%20engineer", &got); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got.Name != "Data Engineer" {
		t.Fatalf("unexpected role: %s", got.Name)
	}
	if len(got.Skills) != 2 || len(got.CriticalSkills) != 1 || got.CriticalSkills[0] != "python" {
		t.Fatalf("unexpected skills: %+v", got)
	}
	if len(got.Keywords) != 3 || got.Keywords[0] != "pipeline" {
		t.Fatalf("expected role keywords in detail, got %v", got.Keywords)
	}

	if code := getJSON(t, router, "/api/v1/roles/astronaut", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown role, got %d", code)
	}
}

func TestCategoriesEndpoints(t *testing.T) {
	router := newCatalogRouter(t)

	var cats struct {
		Categories []string `json:"categories"`
	}
	if code := getJSON(t, router, "/api/v1/categories", &cats); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(cats.Categories) != 2 || cats.Categories[0] != "Finance" {
		t.Fatalf("unexpected categories: %v", cats.Categories)
	}

	var byCat struct {
		Category string `json:"category"`
		Total    int    `json:"total"`
	}
	if code := getJSON(t, router, "/api/v1/categories/finance/roles", &byCat); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if byCat.Total != 1 {
		t.Fatalf("expected one finance role, got %d", byCat.Total)
	}

	if code := getJSON(t, router, "/api/v1/categories/unknown/roles", &byCat); code != http.StatusOK {
		t.Fatalf("unknown category should still be 200, got %d", code)
	}
	if byCat.Total != 0 {
		t.Fatalf("expected zero roles for unknown category, got %d", byCat.Total)
	}
}
