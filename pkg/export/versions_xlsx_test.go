package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

func TestVersionHistory(t *testing.T) {
	created := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	f, err := VersionHistory("AGR-1000", []versioning.VersionSummary{
		{VersionNumber: 1, Title: "first", CreatedAt: created, CreatedByEmail: "a@example.com"},
		{VersionNumber: 2, Title: "second", CreatedAt: created.Add(time.Hour), IsCurrent: true},
	})
	require.NoError(t, err)

	rows, err := f.GetRows("Versions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Version", rows[0][0])
	assert.Equal(t, "first", rows[1][1])
	assert.Equal(t, "a@example.com", rows[1][4])
	assert.Equal(t, "yes", rows[2][5])
}
