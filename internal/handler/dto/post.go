// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	AuthorEmail string  `json:"authorEmail"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FeedQuery represents query parameters for the public feed.
type FeedQuery struct {
	SearchString string
	OrderBy      string
	Skip         *int
	Take         *int
}

// ParseFeedQuery reads feed parameters from the query string.
// Skip and take are coerced with ParseLeadingInt; values that do not
// coerce to a non-negative integer are ignored.
func ParseFeedQuery(query url.Values) FeedQuery {
	return FeedQuery{
		SearchString: query.Get("searchString"),
		OrderBy:      query.Get("orderBy"),
		Skip:         parseCount(query.Get("skip")),
		Take:         parseCount(query.Get("take")),
	}
}

func parseCount(raw string) *int {
	if raw == "" {
		return nil
	}
	n, ok := ParseLeadingInt(raw)
	if !ok || n < 0 {
		return nil
	}
	c := int(n)
	return &c
}

// ParseLeadingInt reads the base-10 integer at the start of raw, the way
// loose numeric coercion does: leading whitespace and one sign are allowed
// and anything after the digits is dropped, so "12abc" is 12. It fails when
// no digit follows or the value overflows int64.
func ParseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
