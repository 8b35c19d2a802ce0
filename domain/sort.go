package domain

import "strings"

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Sort is a requested ordering. By is a client-supplied column name and is
// only honored when it appears in the caller's allow-list.
type Sort struct {
	By    string
	Order SortOrder
}

func NewSort(by, order string) Sort {
	o := SortAsc
	if strings.EqualFold(strings.TrimSpace(order), string(SortDesc)) {
		o = SortDesc
	}
	return Sort{By: strings.TrimSpace(by), Order: o}
}

// Clause resolves the sort against allowed (client name -> SQL column). An empty
// By falls back to defaultBy; an unknown By resolves to fallback, unsorted by
// the requested column.
func (s Sort) Clause(allowed map[string]string, defaultBy, fallback string) string {
	by := s.By
	if by == "" {
		by = defaultBy
	}

	col, ok := allowed[by]
	if !ok {
		return fallback
	}

	order := SortAsc
	if s.Order == SortDesc {
		order = SortDesc
	}
	return col + " " + string(order)
}
