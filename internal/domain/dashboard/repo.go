package dashboard

import "context"

// Repository collects the raw aggregates behind Stats. SuccessRate and the
// zero-filled month series are computed by the service.
type Repository interface {
	Collect(ctx context.Context) (*Stats, error)
}
