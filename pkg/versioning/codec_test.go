package versioning

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSubject struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	StartDate *time.Time `json:"start_date"`
	Secret    string     `json:"-"`
	hidden    string
}

func TestCaptureFieldsExcludesKeys(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	subject := captureSubject{ID: 7, Title: "A", Summary: "s", StartDate: &start, Secret: "x", hidden: "y"}

	data, err := CaptureFields(&subject, "id")
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(data), &fields))
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "-")
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "start_date")
}

func TestRestoreFieldsRoundTrip(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	original := captureSubject{ID: 7, Title: "A", Summary: "first", StartDate: &start}
	data, err := CaptureFields(&original, "id")
	require.NoError(t, err)

	live := captureSubject{ID: 7, Title: "B", Summary: "second", StartDate: nil}
	require.NoError(t, RestoreFields(&live, data, "id"))

	assert.Equal(t, uint(7), live.ID)
	assert.Equal(t, "A", live.Title)
	assert.Equal(t, "first", live.Summary)
	require.NotNil(t, live.StartDate)
	assert.True(t, start.Equal(*live.StartDate))
}

func TestRestoreFieldsLeavesMissingKeysUntouched(t *testing.T) {
	live := captureSubject{Title: "keep", Summary: "keep too"}
	require.NoError(t, RestoreFields(&live, `{"title":"new"}`))
	assert.Equal(t, "new", live.Title)
	assert.Equal(t, "keep too", live.Summary)
}

func TestRestoreFieldsSkipsUndecodableValue(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	live := captureSubject{Title: "old", StartDate: &start}
	// A date blob that was tampered with no longer parses; the field is
	// skipped while the rest of the restore continues.
	require.NoError(t, RestoreFields(&live, `{"title":"new","start_date":"not-a-date"}`))
	assert.Equal(t, "new", live.Title)
	require.NotNil(t, live.StartDate)
	assert.True(t, start.Equal(*live.StartDate))
}

func TestRestoreFieldsRejectsNonPointer(t *testing.T) {
	assert.Error(t, RestoreFields(captureSubject{}, `{}`))
}

type collectionItem struct {
	SLA       string `json:"sla"`
	Timescale string `json:"timescale"`
}

func TestCollectionRoundTrip(t *testing.T) {
	blob, err := CaptureCollection([]collectionItem{
		{SLA: "uptime", Timescale: "monthly"},
		{SLA: "response", Timescale: "4h"},
	})
	require.NoError(t, err)

	items, err := DecodeCollection[collectionItem](blob)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "uptime", items[0].SLA)
	assert.Equal(t, "4h", items[1].Timescale)
}

func TestCollectionEmptyAndNil(t *testing.T) {
	blob, err := CaptureCollection[collectionItem](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", blob)

	items, err := DecodeCollection[collectionItem]("")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	items, err = DecodeCollection[collectionItem]("null")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
