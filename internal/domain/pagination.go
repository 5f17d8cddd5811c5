package domain

// ListParams holds offset-based pagination and ordering parameters for list
// queries. Ordering is always tie-broken by id ascending so pages are stable.
type ListParams struct {
	Skip    int
	Limit   int
	OrderBy string
	Reverse bool
}

// DefaultLimit caps list queries that pass a non-positive limit.
const DefaultLimit = 100

// Normalize clamps negative offsets and applies the default limit.
func (p ListParams) Normalize() ListParams {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}
