package analyses_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/bootstrap"
	"resume-insight/internal/shared/config"
)

const resumeText = `Jane Doe
jane.doe@example.com | 555-123-4567 | linkedin.com/in/janedoe

Experience
- Led a team of 5 engineers delivering a payments platform
- Built CI/CD pipelines with Jenkins and Docker serving 2000+ users

Education
BS in Computer Science, State University

Skills
Python, Go, SQL, Docker, Kubernetes`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func postJSON(t *testing.T, router *gin.Engine, path, guestID string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp := postJSON(t, router, "/api/v1/analyses/text", "guest-a", map[string]string{
		"text":           resumeText,
		"jobDescription": "We need Python and Kubernetes experience.",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		AnalysisID string `json:"analysisId"`
		Status     string `json:"status"`
		Result     struct {
			HealthScore float64 `json:"healthScore"`
			JobMatch    *struct {
				MatchScore float64 `json:"matchScore"`
			} `json:"jobMatch"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.AnalysisID == "" {
		t.Fatal("expected analysisId")
	}
	if created.Status != "completed" {
		t.Fatalf("expected completed, got %s", created.Status)
	}
	if created.Result.HealthScore <= 0 {
		t.Fatalf("expected positive health score, got %v", created.Result.HealthScore)
	}
	if created.Result.JobMatch == nil {
		t.Fatal("expected job match in result")
	}

	// The owner can fetch it back.
	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+created.AnalysisID, nil)
	reqGet.Header.Set("X-Guest-Id", "guest-a")
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", respGet.Code)
	}

	// Another caller cannot.
	reqOther := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+created.AnalysisID, nil)
	reqOther.Header.Set("X-Guest-Id", "guest-b")
	respOther := httptest.NewRecorder()
	router.ServeHTTP(respOther, reqOther)
	if respOther.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other caller, got %d", respOther.Code)
	}
}

func TestAnalyzeTextEndpoint_Validation(t *testing.T) {
	router := newTestRouter(t)

	resp := postJSON(t, router, "/api/v1/analyses/text", "guest-a", map[string]string{"text": "too short"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	// Missing identity is rejected before validation.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/text", strings.NewReader(`{"text":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req)
	if resp2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp2.Code)
	}
}

func TestAnalyzeDocumentEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Upload a resume first.
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte(resumeText)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	reqUpload := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	reqUpload.Header.Set("Content-Type", writer.FormDataContentType())
	reqUpload.Header.Set("X-Guest-Id", "guest-doc")
	respUpload := httptest.NewRecorder()
	router.ServeHTTP(respUpload, reqUpload)
	if respUpload.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", respUpload.Code, respUpload.Body.String())
	}

	var uploaded struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(respUpload.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	resp := postJSON(t, router, "/api/v1/documents/"+uploaded.DocumentID+"/analyze", "guest-doc", map[string]string{})
	if resp.Code != http.StatusCreated {
		t.Fatalf("analyze: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var analyzed struct {
		DocumentID string `json:"documentId"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analyzed); err != nil {
		t.Fatalf("decode analyze response: %v", err)
	}
	if analyzed.DocumentID != uploaded.DocumentID {
		t.Fatalf("expected documentId %s, got %s", uploaded.DocumentID, analyzed.DocumentID)
	}

	// Unknown document.
	respMissing := postJSON(t, router, "/api/v1/documents/nope/analyze", "guest-doc", map[string]string{})
	if respMissing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown document, got %d", respMissing.Code)
	}
}

func TestListAnalyses_GuestBlocked(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.Header.Set("X-Guest-Id", "guest-a")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for guest history, got %d", resp.Code)
	}
}

func TestListAnalyses_AuthedUser(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"text": resumeText})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	reqList.Header.Set("X-User-Id", "user-42")
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)
	if respList.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", respList.Code)
	}

	var items []map[string]any
	if err := json.NewDecoder(respList.Body).Decode(&items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one analysis, got %d", len(items))
	}
}
