package records

const DefaultPerPage = 20

// Query filters and paginates a listing. Nil amount bounds are open.
type Query struct {
	Type      string
	MinAmount *float64
	MaxAmount *float64
	Page      int
	PerPage   int
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type Page struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

func (q Query) matches(t *Transaction) bool {
	if q.Type != "" && t.Type != q.Type {
		return false
	}
	if q.MinAmount != nil && t.Amount < *q.MinAmount {
		return false
	}
	if q.MaxAmount != nil && t.Amount > *q.MaxAmount {
		return false
	}
	return true
}

// List applies q's filters in store order and returns the requested page.
// Totals count the filtered set.
func (e *Engine) List(q Query) (Page, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = DefaultPerPage
	}
	if q.Page < 1 {
		return Page{}, &ValidationError{Field: "page", Reason: "must be at least 1"}
	}
	if q.PerPage < 1 {
		return Page{}, &ValidationError{Field: "per_page", Reason: "must be at least 1"}
	}

	return Paginate(e.filter(q.matches), q.Page, q.PerPage), nil
}

// Paginate slices items to [(page-1)*perPage, page*perPage). page and
// perPage must be positive. Pages past the end are empty.
func Paginate(items []Transaction, page, perPage int) Page {
	total := len(items)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	result := Page{
		Transactions: []Transaction{},
		Pagination: Pagination{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}
	// page-1 < totalPages keeps the multiplication below total.
	if page-1 >= totalPages {
		return result
	}
	start := (page - 1) * perPage
	end := start + min(perPage, total-start)
	result.Transactions = items[start:end]
	return result
}
