package health

import "resume-insight/internal/knowledge"

// Service encapsulates health-related checks.
type Service struct {
	Catalog *knowledge.Catalog
	DBCheck func() error
}

// NewService constructs a health service over the loaded catalog.
func NewService(catalog *knowledge.Catalog, dbCheck func() error) *Service {
	return &Service{Catalog: catalog, DBCheck: dbCheck}
}

// Status reports readiness plus the size of the loaded knowledge base so
// operators can spot an empty or stale catalog at a glance.
func (s *Service) Status() map[string]any {
	out := map[string]any{"ok": true}
	if s.Catalog != nil {
		roles, skills := s.Catalog.Size()
		out["roles"] = roles
		out["skills"] = skills
	}
	if s.DBCheck != nil {
		if err := s.DBCheck(); err != nil {
			out["ok"] = false
			out["db"] = err.Error()
		} else {
			out["db"] = "ok"
		}
	}
	return out
}
