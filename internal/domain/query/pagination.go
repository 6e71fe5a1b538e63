package query

// Pagination holds offset/limit paging parameters for list queries.
type Pagination struct {
	Offset int
	Limit  int
}

// Normalize clamps paging values into a sane range.
func (p *Pagination) Normalize() {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Pages returns the number of pages for a total row count.
func (p *Pagination) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Page returns the 1-based page index for the current offset.
func (p *Pagination) Page() int {
	return p.Offset/p.Limit + 1
}
