package pagination

import "github.com/Rehan-4778/JobHunt-BE/pkg/types"

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize enforces the configured defaults and maximum limit.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// MetaFor builds the response metadata for a listing of total rows.
func (p Params) MetaFor(total int64) types.PageMeta {
	n := p.Normalize()
	totalPages := int(total) / n.Limit
	if int(total)%n.Limit != 0 {
		totalPages++
	}
	return types.PageMeta{
		Page:       n.Page,
		Limit:      n.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    int64(n.Page*n.Limit) < total,
	}
}
