// Package query holds the paging and ordering options shared by repository filters.
package query

// Page is a limit/offset window. Limit 0 means no upper bound.
type Page struct {
	Limit  int
	Offset int
}

// Unbounded reports whether the window has no upper bound.
func (p Page) Unbounded() bool {
	return p.Limit == 0
}

// Sort orders a query by a whitelisted column.
type Sort struct {
	Column     string
	Descending bool
}

// OrderClause renders the ORDER BY fragment. Column must come from a whitelist.
func (s Sort) OrderClause() string {
	if s.Column == "" {
		return ""
	}
	if s.Descending {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}
