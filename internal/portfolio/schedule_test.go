package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCatalogSelectsMatchingEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	contents := `
schedules:
  - category: HNE
    min_atoms: 0
    max_atoms: 100
    quick:
      - "dis+11_4"
      - "lrs+1:sos=on_10"
    fallback:
      - "dis+11_300"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)

	sched, ok := cat.Select(CategoryHorn, Property{Atoms: 5})
	require.True(t, ok)
	require.Len(t, sched.Quick, 2)
	require.Equal(t, "dis+11_4", sched.Quick[0].String())
	require.Len(t, sched.Fallback, 1)

	_, ok = cat.Select(CategoryNonHornEquality, Property{Atoms: 5})
	require.False(t, ok)
}

func TestLoadCatalogRejectsMalformedSlice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedules:\n  - category: HNE\n    quick: [\"not-a-slice\"]\n"), 0o644))

	_, err := LoadCatalog(path)
	require.Error(t, err)
}
