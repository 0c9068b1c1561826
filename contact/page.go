package contact

const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// ListParams are the query parameters of one list request.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func DefaultListParams() ListParams {
	return ListParams{Page: DefaultPage, Limit: DefaultLimit}
}

// Normalize keeps Page at 1 or above and falls back to DefaultLimit for a
// non-positive Limit.
func (p ListParams) Normalize() ListParams {
	if p.Page < DefaultPage {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Page is one page of a list response. Total counts every contact matching
// the search, not only the ones in Contacts.
type Page struct {
	Contacts []Contact `json:"contacts"`
	Total    int       `json:"total"`
}

type Pagination struct {
	Current  int `json:"current"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}
