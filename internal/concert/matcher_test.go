package concert

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSheets implements Sheets in memory.  Range data is keyed by
// spreadsheetID + "|" + range string.
type fakeSheets struct {
	ranges    map[string][][]string
	tabs      map[string][]string
	rangeErrs map[string]error
	tabErrs   map[string]error

	appended  [][]string
	appendTo  []string
	appendErr error

	updated   map[string]string
	updateErr error
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{
		ranges:    map[string][][]string{},
		tabs:      map[string][]string{},
		rangeErrs: map[string]error{},
		tabErrs:   map[string]error{},
		updated:   map[string]string{},
	}
}

func (f *fakeSheets) ReadRange(_ context.Context, id, rng string) ([][]string, error) {
	key := id + "|" + rng
	if err := f.rangeErrs[key]; err != nil {
		return nil, err
	}
	return f.ranges[key], nil
}

func (f *fakeSheets) TabTitles(_ context.Context, id string) ([]string, error) {
	if err := f.tabErrs[id]; err != nil {
		return nil, err
	}
	return f.tabs[id], nil
}

func (f *fakeSheets) AppendRow(_ context.Context, id, rng string, values []string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appendTo = append(f.appendTo, id+"|"+rng)
	f.appended = append(f.appended, values)
	return nil
}

func (f *fakeSheets) UpdateCell(_ context.Context, id, cell, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id+"|"+cell] = value
	return nil
}

func newTestMatcher(fs *fakeSheets) *Matcher {
	resolver := &Resolver{Sheets: fs, MasterSheetID: "master", MasterTab: "index"}
	return &Matcher{Sheets: fs, Resolver: resolver}
}

// seedConcert registers one concert in the index with a single tab.
func seedConcert(fs *fakeSheets, name, id, tab string, rows [][]string) {
	fs.ranges["master|index!A2:B"] = append(fs.ranges["master|index!A2:B"], []string{name, id})
	fs.tabs[id] = append(fs.tabs[id], tab)
	fs.ranges[id+"|"+tab+"!A2:E"] = rows
}

func TestResolverSkipsIncompleteRowsAndTrims(t *testing.T) {
	fs := newFakeSheets()
	fs.ranges["master|index!A2:B"] = [][]string{
		{" ConcertA ", " sheet123 "},
		{"OnlyName"},
		{"", "sheet999"},
		{"ConcertB", "sheet456"},
	}
	r := &Resolver{Sheets: fs, MasterSheetID: "master", MasterTab: "index"}

	entries, err := r.Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "ConcertA", SpreadsheetID: "sheet123"}, entries[0])
	assert.Equal(t, Entry{Name: "ConcertB", SpreadsheetID: "sheet456"}, entries[1])
}

func TestResolverPropagatesReadFailure(t *testing.T) {
	fs := newFakeSheets()
	fs.rangeErrs["master|index!A2:B"] = errors.New("boom")
	r := &Resolver{Sheets: fs, MasterSheetID: "master", MasterTab: "index"}

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
}

func TestSearchByNameAcrossAllConcerts(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", [][]string{
		{"1", "", "Jane", "0810000000", "Uabc"},
	})
	m := newTestMatcher(fs)

	result, err := m.Search(context.Background(), "Jane", "")
	require.NoError(t, err)
	assert.Contains(t, result, "Uabc")
	assert.Contains(t, result, "ConcertA - Day1")
}

func TestSearchUnknownConcertReturnsConcertNotFound(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", [][]string{
		{"1", "", "Jane", "0810000000", "Uabc"},
	})
	m := newTestMatcher(fs)

	result, err := m.Search(context.Background(), "Jane", "ConcertB")
	require.NoError(t, err)
	assert.Equal(t, "❌ ไม่พบคอนเสิร์ตชื่อ \"ConcertB\" ใน Master Sheet", result)
}

func TestSearchByQueueOrderNeedsConcertScope(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", [][]string{
		{"5", "", "Jane", "0810000000", "Uabc"},
	})
	m := newTestMatcher(fs)

	// Without a named concert a bare queue number must never match.
	result, err := m.Search(context.Background(), "5", "")
	require.NoError(t, err)
	assert.Contains(t, result, "ไม่พบ")

	result, err = m.Search(context.Background(), "5", "ConcertA")
	require.NoError(t, err)
	assert.Contains(t, result, "Uabc")
}

func TestSearchByPhoneSubstring(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", [][]string{
		{"1", "", "Jane", "0810000000", "Uabc"},
		{"2", "", "Mali", "0629999999", "Udef"},
	})
	m := newTestMatcher(fs)

	result, err := m.Search(context.Background(), "062999", "")
	require.NoError(t, err)
	assert.Contains(t, result, "Udef")
	assert.NotContains(t, result, "Uabc")
}

func TestSearchRowListedOnceOnMultiplePredicateHits(t *testing.T) {
	fs := newFakeSheets()
	// Keyword appears in both name and phone of the same row.
	seedConcert(fs, "ConcertA", "sheet123", "Day1", [][]string{
		{"1", "", "081Jane", "0810000000", "Uabc"},
	})
	m := newTestMatcher(fs)

	result, err := m.Search(context.Background(), "081", "")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(result, "Uabc"))
}

func TestSearchSkipsUnreadableTabsAndConcerts(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "Broken", "badsheet", "Day1", nil)
	fs.tabErrs["badsheet"] = errors.New("403")
	seedConcert(fs, "ConcertA", "sheet123", "Day1", [][]string{
		{"1", "", "Jane", "0810000000", "Uabc"},
	})
	fs.tabs["sheet123"] = append(fs.tabs["sheet123"], "BadTab")
	fs.rangeErrs["sheet123|BadTab!A2:E"] = errors.New("range error")
	m := newTestMatcher(fs)

	result, err := m.Search(context.Background(), "Jane", "")
	require.NoError(t, err)
	assert.Contains(t, result, "Uabc")
}

func TestSearchNotFoundMessageNamesScope(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	m := newTestMatcher(fs)

	all, err := m.Search(context.Background(), "nobody", "")
	require.NoError(t, err)
	assert.Equal(t, "❌ ไม่พบ \"nobody\" ในทุกคอนเสิร์ตใน Master Sheet", all)

	scoped, err := m.Search(context.Background(), "nobody", "ConcertA")
	require.NoError(t, err)
	assert.Equal(t, "❌ ไม่พบ \"nobody\" ในคอนเสิร์ต \"ConcertA\"", scoped)
}

func TestLookupSeatRequiresBothArguments(t *testing.T) {
	m := newTestMatcher(newFakeSheets())

	for _, args := range [][2]string{{"", "ConcertA"}, {"Uabc", ""}, {"", ""}} {
		result, err := m.LookupSeat(context.Background(), args[0], args[1])
		require.NoError(t, err)
		assert.Equal(t, msgSeatLookupHint, result)
	}
}

func TestLookupSeatReturnsFirstExactUIDMatch(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.ranges["sheet123|Day1!A2:P"] = [][]string{
		{"1", "", "Jane", "0810000000", "Uother"},
		{"2", "", "Mali", "0629999999", "Uabc", "", "18 ม.ค. 2569", "2", "4500", "", "", "A1 แถว 3", "https://orders.example/42"},
	}
	m := newTestMatcher(fs)

	result, err := m.LookupSeat(context.Background(), "Uabc", "ConcertA")
	require.NoError(t, err)
	assert.Contains(t, result, "งาน: ConcertA")
	assert.Contains(t, result, "วันแสดง: 18 ม.ค. 2569")
	assert.Contains(t, result, "ราคา: 4500 บาท")
	assert.Contains(t, result, "โซนและที่นั่ง: A1 แถว 3")
	assert.Contains(t, result, "จำนวน: 2 ใบ")
	assert.Contains(t, result, "https://orders.example/42")
}

func TestLookupSeatMissingFieldsRenderAsDash(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.ranges["sheet123|Day1!A2:P"] = [][]string{
		{"1", "", "Jane", "0810000000", "Uabc"},
	}
	m := newTestMatcher(fs)

	result, err := m.LookupSeat(context.Background(), "Uabc", "ConcertA")
	require.NoError(t, err)
	assert.Contains(t, result, "วันแสดง: -")
	assert.Contains(t, result, "ราคา: - บาท")
}

func TestLookupSeatUIDNotFound(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.ranges["sheet123|Day1!A2:P"] = [][]string{
		{"1", "", "Jane", "0810000000", "Uother"},
	}
	m := newTestMatcher(fs)

	result, err := m.LookupSeat(context.Background(), "Uabc", "ConcertA")
	require.NoError(t, err)
	assert.Equal(t, "❌ ไม่พบ UID \"Uabc\" ในคอนเสิร์ต \"ConcertA\"", result)
}

func TestLookupSeatUnknownConcert(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	m := newTestMatcher(fs)

	result, err := m.LookupSeat(context.Background(), "Uabc", "ConcertB")
	require.NoError(t, err)
	assert.Equal(t, "❌ ไม่พบคอนเสิร์ตชื่อ \"ConcertB\" ใน Master Sheet", result)
}

func TestLookupSeatUnreadableConcertDegradesToMessage(t *testing.T) {
	fs := newFakeSheets()
	seedConcert(fs, "ConcertA", "sheet123", "Day1", nil)
	fs.tabErrs["sheet123"] = errors.New("403")
	m := newTestMatcher(fs)

	result, err := m.LookupSeat(context.Background(), "Uabc", "ConcertA")
	require.NoError(t, err)
	assert.Equal(t, "⚠️ ไม่สามารถอ่านข้อมูลคอนเสิร์ต \"ConcertA\" ได้", result)
}
