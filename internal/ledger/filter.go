package ledger

import "strings"

// RowFilter narrows aggregated supplier rows for presentation. Nil fields
// match everything; Query is a case-insensitive substring match on the
// office name.
type RowFilter struct {
	Year  *int
	Month *int // zero-indexed
	Query string
}

func FilterRows(rows []Row, filter RowFilter) []Row {
	out := make([]Row, 0, len(rows))
	query := strings.ToLower(filter.Query)

	for _, row := range rows {
		if filter.Year != nil && row.Year != *filter.Year {
			continue
		}
		if filter.Month != nil && row.Month != *filter.Month {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(row.OfficeName), query) {
			continue
		}
		out = append(out, row)
	}

	return out
}

// Client type selectors for ClientRowFilter.
const (
	ClientTypeAny    = ""
	ClientTypeOffice = "office"
	ClientTypeDirect = "direct"
)

type ClientRowFilter struct {
	Year       *int
	Month      *int
	Query      string
	ClientType string
}

func FilterClientRows(rows []ClientRow, filter ClientRowFilter) []ClientRow {
	out := make([]ClientRow, 0, len(rows))
	query := strings.ToLower(filter.Query)

	for _, row := range rows {
		if filter.Year != nil && row.Year != *filter.Year {
			continue
		}
		if filter.Month != nil && row.Month != *filter.Month {
			continue
		}
		if filter.ClientType == ClientTypeOffice && row.IsDirectClient {
			continue
		}
		if filter.ClientType == ClientTypeDirect && !row.IsDirectClient {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(row.ClientKey), query) {
			continue
		}
		out = append(out, row)
	}

	return out
}
