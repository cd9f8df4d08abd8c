package audit

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAndLoad(t *testing.T) {
	dir := t.TempDir()
	log := NewAuditLog(dir)

	_, err := log.LoadHistory()
	assert.Error(t, err)

	first := CreateScanRecord(Summary{
		Root:      dir,
		TypeNames: []string{"StaticMesh", "Texture", "StaticMesh"},
		Scripts:   2,
		Duration:  1500 * time.Millisecond,
	})
	assert.Equal(t, 3, first.Assets)
	assert.Equal(t, 2, first.TypeCount["StaticMesh"])
	assert.Equal(t, "1.5s", first.Duration)

	require.NoError(t, log.LogScan(first))
	require.NoError(t, log.LogScan(CreateScanRecord(Summary{Root: dir, Scripts: 5})))

	records, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 5, records[0].Scripts, "newest first")
	assert.NotEmpty(t, records[0].ScanID)
	assert.NotEqual(t, records[0].ScanID, records[1].ScanID)
}

func TestDeleteRecord(t *testing.T) {
	dir := t.TempDir()
	log := NewAuditLog(dir)
	for i := 1; i <= 3; i++ {
		require.NoError(t, log.LogScan(ScanRecord{Root: dir, Scripts: i}))
	}
	require.NoError(t, log.DeleteRecord(0))
	assert.Error(t, log.DeleteRecord(5))

	records, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Scripts)
	assert.Equal(t, 1, records[1].Scripts)

	_, err = os.Stat(log.Path())
	assert.NoError(t, err)
}
