package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	date time.Time
	id   string
}

func rowKey(r row) (time.Time, string) { return r.date, r.id }

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(date, "line-7")
	assert.NotEmpty(t, token)

	decodedDate, id, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, date, decodedDate)
	assert.Equal(t, "line-7", id)

	// ids may themselves contain the separator
	decodedDate, id, err = DecodeToken(EncodeToken(date, "a|b"))
	require.NoError(t, err)
	assert.True(t, date.Equal(decodedDate))
	assert.Equal(t, "a|b", id)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	_, _, err = DecodeToken("MjAyNC0wMy0xNQ==") // "2024-03-15"
	assert.ErrorContains(t, err, "split")

	_, _, err = DecodeToken("bm90YWRhdGV8bGluZS0x") // "notadate|line-1"
	assert.ErrorContains(t, err, "date parse")
}

func TestPage(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []row{
		{day, "a"}, {day, "b"}, {day.AddDate(0, 0, 1), "c"}, {day.AddDate(0, 0, 2), "d"}, {day.AddDate(0, 0, 2), "e"},
	}

	page, next, err := Page(rows, 2, "", rowKey)
	require.NoError(t, err)
	assert.Equal(t, []row{rows[0], rows[1]}, page)
	require.NotEmpty(t, next)

	page, next, err = Page(rows, 2, next, rowKey)
	require.NoError(t, err)
	assert.Equal(t, []row{rows[2], rows[3]}, page)

	page, next, err = Page(rows, 2, next, rowKey)
	require.NoError(t, err)
	assert.Equal(t, []row{rows[4]}, page)
	assert.Empty(t, next)
}

func TestPageWithoutLimitReturnsEverything(t *testing.T) {
	rows := []row{{time.Time{}, "a"}, {time.Time{}, "b"}}

	page, next, err := Page(rows, 0, "", rowKey)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Empty(t, next)
}

func TestPageUnknownToken(t *testing.T) {
	rows := []row{{time.Time{}, "a"}}

	_, _, err := Page(rows, 1, EncodeToken(time.Time{}, "missing"), rowKey)
	assert.ErrorContains(t, err, "does not match")
}
