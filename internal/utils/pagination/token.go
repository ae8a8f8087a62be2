package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque cursor from an entry date and a row id.
func EncodeToken(date time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", date.Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return date, parts[1], nil
}

// Page returns at most limit items following the item the token points at,
// plus the token for the next page ("" when this page is the last one).
// items must already be in their final order. A limit <= 0 disables paging.
func Page[T any](items []T, limit int, token string, key func(T) (time.Time, string)) ([]T, string, error) {
	start := 0
	if token != "" {
		date, id, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start = -1
		for i, item := range items {
			d, itemID := key(item)
			if itemID == id && d.Equal(date) {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", fmt.Errorf("pagination token does not match any row")
		}
	}

	rest := items[start:]
	if limit <= 0 || len(rest) <= limit {
		return rest, "", nil
	}
	page := rest[:limit]
	d, id := key(page[len(page)-1])
	return page, EncodeToken(d, id), nil
}
