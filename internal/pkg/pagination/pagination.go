package pagination

import (
	"errors"
)

const MaxLimit = 100

var (
	ErrNegativeLimit  = errors.New("limit must not be negative")
	ErrNegativeOffset = errors.New("offset must not be negative")
)

// Page is a limit/offset window over an ordered result set.
type Page struct {
	Limit  int
	Offset int
}

// New builds a Page from optional caller input, applying defaultLimit when
// limit is absent and capping it at MaxLimit.
func New(limit, offset *int, defaultLimit int) (Page, error) {
	p := Page{Limit: defaultLimit}
	if limit != nil {
		if *limit < 0 {
			return Page{}, ErrNegativeLimit
		}
		p.Limit = *limit
	}
	if offset != nil {
		if *offset < 0 {
			return Page{}, ErrNegativeOffset
		}
		p.Offset = *offset
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}

// HasNextPage reports whether rows remain past this window.
func (p Page) HasNextPage(total int64) bool {
	return int64(p.Offset)+int64(p.Limit) < total
}

// Window applies the page to an already ordered slice.
func Window[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
