package analyses

import "context"

// Repo defines persistence operations for analyses. Reads are scoped to the
// owning user so one caller can never see another's history.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, userID, analysisID string) (Analysis, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error)
}
