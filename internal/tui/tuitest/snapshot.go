package tuitest

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update snapshot files")

// SnapshotPath is where the golden file for the running test lives
func SnapshotPath(t *testing.T) string {
	return filepath.Join("testdata", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "_"))+".snap")
}

// AssertSnapshot compares output with the test's golden file. A missing
// golden file is written from output; -update rewrites existing ones.
func AssertSnapshot(t *testing.T, output string) {
	t.Helper()

	snapshotPath := SnapshotPath(t)

	snapshot, err := os.ReadFile(snapshotPath)
	if *update || os.IsNotExist(err) {
		err := os.MkdirAll(filepath.Dir(snapshotPath), 0755)
		require.NoError(t, err)
		err = os.WriteFile(snapshotPath, []byte(output), 0644)
		require.NoError(t, err)
		t.Logf("wrote snapshot: %s", snapshotPath)
		return
	}
	require.NoError(t, err)

	require.Equal(t, string(snapshot), output, "snapshot does not match. run with -update to update it.")
}
