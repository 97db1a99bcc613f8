package analyses

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-insight/internal/analyses/recommendations"
	"resume-insight/internal/ats"
	"resume-insight/internal/jdmatch"
	"resume-insight/internal/knowledge"
	"resume-insight/internal/rolematch"
	"resume-insight/internal/shared/metrics"
	"resume-insight/internal/shared/telemetry"
	"resume-insight/internal/skills"
)

const (
	// DefaultMinResumeChars rejects inputs too short to say anything about.
	DefaultMinResumeChars = 50
	// DefaultTopRoleMatches caps the ranked role list in the report.
	DefaultTopRoleMatches = 10

	rolesPerCategory = 3
)

// Health score weights. The components sum to 100 at full marks.
const (
	healthATSWeight    = 0.4
	healthSkillMax     = 25.0
	healthSkillTarget  = 15.0
	healthVerbMax      = 10.0
	healthVerbTarget   = 10.0
	healthMetricMax    = 10.0
	healthMetricTarget = 5.0
	healthSectionMax   = 15.0
)

var coreSections = []string{"experience", "education", "skills"}

// DocumentTextSource resolves the extracted plain text of a stored document.
type DocumentTextSource interface {
	ExtractedText(ctx context.Context, userID, documentID string) (string, error)
}

// Service runs the analysis pipeline and persists the results.
type Service struct {
	Repo           Repo
	Catalog        *knowledge.Catalog
	Extractor      *skills.Extractor
	Docs           DocumentTextSource
	MinResumeChars int
	TopRoleMatches int
}

// NewService constructs a Service with default limits.
func NewService(repo Repo, catalog *knowledge.Catalog, extractor *skills.Extractor, docs DocumentTextSource) *Service {
	return &Service{
		Repo:           repo,
		Catalog:        catalog,
		Extractor:      extractor,
		Docs:           docs,
		MinResumeChars: DefaultMinResumeChars,
		TopRoleMatches: DefaultTopRoleMatches,
	}
}

// AnalyzeText runs the full pipeline on raw resume text and stores the result.
func (s *Service) AnalyzeText(ctx context.Context, userID, text, jobDescription string) (Analysis, error) {
	if userID == "" {
		return Analysis{}, fmt.Errorf("user id is required: %w", ErrInvalidInput)
	}
	if err := s.validateText(text); err != nil {
		return Analysis{}, err
	}

	report, err := s.runPipeline(text, jobDescription)
	if err != nil {
		return Analysis{}, err
	}
	return s.store(ctx, userID, "", jobDescription, report)
}

// AnalyzeDocument loads the extracted text of an uploaded document and runs
// the pipeline on it.
func (s *Service) AnalyzeDocument(ctx context.Context, userID, documentID, jobDescription string) (Analysis, error) {
	if userID == "" || documentID == "" {
		return Analysis{}, fmt.Errorf("user id and document id are required: %w", ErrInvalidInput)
	}

	text, err := s.Docs.ExtractedText(ctx, userID, documentID)
	if err != nil {
		return Analysis{}, fmt.Errorf("load document text: %w", err)
	}
	if err := s.validateText(text); err != nil {
		return Analysis{}, err
	}

	report, err := s.runPipeline(text, jobDescription)
	if err != nil {
		return Analysis{}, err
	}
	return s.store(ctx, userID, documentID, jobDescription, report)
}

// Get returns an analysis owned by the user.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, fmt.Errorf("analysis id is required: %w", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, analysisID)
}

// List returns analyses for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) validateText(text string) error {
	minChars := s.MinResumeChars
	if minChars <= 0 {
		minChars = DefaultMinResumeChars
	}
	if len(strings.TrimSpace(text)) < minChars {
		return fmt.Errorf("resume text must be at least %d characters: %w", minChars, ErrInvalidInput)
	}
	return nil
}

func (s *Service) store(ctx context.Context, userID, documentID, jobDescription string, report Report) (Analysis, error) {
	now := time.Now().UTC()
	analysis := Analysis{
		ID:             uuid.NewString(),
		DocumentID:     documentID,
		UserID:         userID,
		Status:         StatusCompleted,
		JobDescription: jobDescription,
		Result:         &report,
		CompletedAt:    &now,
		CreatedAt:      now,
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, err
	}
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":  analysis.ID,
		"user_id":      userID,
		"document_id":  documentID,
		"health_score": report.HealthScore,
		"skill_count":  len(report.Skills.Extracted),
	})
	return analysis, nil
}

func (s *Service) runPipeline(text, jobDescription string) (Report, error) {
	metrics.IncAnalysisStarted()
	start := time.Now()
	report, err := s.buildReport(text, jobDescription)
	if err != nil {
		metrics.IncAnalysisFailed()
		return Report{}, err
	}
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.IncAnalysisCompleted()
	return report, nil
}

// buildReport is the pure pipeline: same text and job description always
// produce the same report.
func (s *Service) buildReport(text, jobDescription string) (Report, error) {
	extracted := s.Extractor.Extract(text)
	atsRes := ats.Analyze(text, extracted)

	allRoles, err := rolematch.Match(extracted, s.Catalog, 0)
	if err != nil {
		return Report{}, fmt.Errorf("match roles: %w", err)
	}

	topN := s.TopRoleMatches
	if topN <= 0 {
		topN = DefaultTopRoleMatches
	}
	top := allRoles
	if len(top) > topN {
		top = top[:topN]
	}

	roles := RolesReport{
		TopMatches: top,
		ByCategory: rolesByCategory(allRoles),
	}
	if len(top) > 0 {
		best := top[0]
		roles.BestFit = &best
	}

	skillsReport := SkillsReport{
		Extracted:      extracted,
		ByCategory:     skillsByCategory(extracted),
		Certifications: skills.ExtractCertifications(text),
		Education:      skills.ExtractEducation(text),
	}
	if years := skills.ExtractExperienceYears(text); years.Max > 0 {
		skillsReport.ExperienceYears = &years
	}

	var jobMatch *jdmatch.Result
	if strings.TrimSpace(jobDescription) != "" {
		m := jdmatch.Match(extracted, jobDescription, s.Extractor)
		jobMatch = &m
	}

	health := healthScore(atsRes, len(extracted))

	recInput := recommendations.Input{
		ATSPriorities:  atsRes.PriorityImprovements,
		ATSSuggestions: atsRes.Suggestions,
		SkillCount:     len(extracted),
	}
	if roles.BestFit != nil {
		recInput.BestRole = roles.BestFit.Role
		recInput.CriticalGaps = roles.BestFit.Missing.Critical
	}
	if jobMatch != nil {
		recInput.MissingMustHave = jobMatch.Missing.MustHave
		recInput.MissingNiceToHave = jobMatch.Missing.NiceToHave
	}

	report := Report{
		HealthScore:     health,
		ATS:             atsRes,
		Skills:          skillsReport,
		Roles:           roles,
		JobMatch:        jobMatch,
		Recommendations: recommendations.Generate(recInput),
	}
	report.Insights = buildInsights(report)
	return report, nil
}

// healthScore blends the ATS score with skill breadth, verb and metric usage
// and core section coverage into a single 0-100 number.
func healthScore(atsRes ats.Result, skillCount int) float64 {
	score := atsRes.OverallScore * healthATSWeight
	score += math.Min(float64(skillCount)/healthSkillTarget, 1) * healthSkillMax
	score += math.Min(float64(atsRes.ActionVerbCount)/healthVerbTarget, 1) * healthVerbMax
	score += math.Min(float64(atsRes.MetricCount)/healthMetricTarget, 1) * healthMetricMax

	present := 0
	for _, section := range coreSections {
		if atsRes.SectionsDetected[section] {
			present++
		}
	}
	score += float64(present) / float64(len(coreSections)) * healthSectionMax

	return round2(math.Min(math.Max(score, 0), 100))
}

func skillsByCategory(extracted []skills.ExtractedSkill) map[string][]string {
	out := make(map[string][]string)
	for _, sk := range extracted {
		category := string(sk.Category)
		out[category] = append(out[category], sk.Name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

// rolesByCategory keeps the strongest few roles per catalog category.
func rolesByCategory(results []rolematch.Result) map[string][]RoleScore {
	out := make(map[string][]RoleScore)
	for _, r := range results {
		if len(out[r.Category]) >= rolesPerCategory {
			continue
		}
		out[r.Category] = append(out[r.Category], RoleScore{Role: r.Role, Score: r.OverallScore})
	}
	return out
}

func buildInsights(report Report) []string {
	out := make([]string, 0, 5)
	out = append(out, fmt.Sprintf("Overall resume health is %.0f out of 100.", report.HealthScore))
	if report.Roles.BestFit != nil {
		out = append(out, fmt.Sprintf("Strongest role fit: %s (%.0f%% match, %s confidence).",
			report.Roles.BestFit.Role, report.Roles.BestFit.OverallScore, report.Roles.BestFit.Confidence))
	}
	out = append(out, fmt.Sprintf("%d recognizable skills detected across %d categories.",
		len(report.Skills.Extracted), len(report.Skills.ByCategory)))
	if report.Skills.ExperienceYears != nil {
		out = append(out, fmt.Sprintf("Up to %d years of experience claimed.", report.Skills.ExperienceYears.Max))
	}
	if report.JobMatch != nil {
		out = append(out, fmt.Sprintf("Job description alignment: %s (%.0f%%).",
			report.JobMatch.Grade, report.JobMatch.MatchScore))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
