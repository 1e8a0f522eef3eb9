package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
)

func testRows() []models.EntityRef {
	return []models.EntityRef{
		{Name: "Reliance Industries", NSESymbol: "RELIANCE", BSESymbol: "500325", Sector: "Energy"},
		{Name: "Tata Motors", NSESymbol: "TATAMOTORS", Sector: "Automobile"},
		{Name: "Tata Steel", NSESymbol: "TATASTEEL", Sector: "Metals & Mining"},
		{Name: "Infosys", NSESymbol: "INFY", BSESymbol: "500209", Sector: "Information Technology"},
	}
}

func TestSearchByName(t *testing.T) {
	dir, err := NewInMemory(testRows())
	require.NoError(t, err)
	defer dir.Close()

	got := dir.SearchByName("tata", 5)
	require.NotEmpty(t, got)
	for _, row := range got {
		assert.Contains(t, row.Name, "Tata")
	}
}

func TestSearchByNameRespectsLimit(t *testing.T) {
	dir, err := NewInMemory(testRows())
	require.NoError(t, err)
	defer dir.Close()

	got := dir.SearchByName("tata", 1)
	assert.Len(t, got, 1)

	assert.Nil(t, dir.SearchByName("", 5))
	assert.Nil(t, dir.SearchByName("tata", 0))
}

func TestSearchBySymbol(t *testing.T) {
	dir, err := NewInMemory(testRows())
	require.NoError(t, err)
	defer dir.Close()

	row, ok := dir.SearchBySymbol("infy")
	require.True(t, ok)
	assert.Equal(t, "Infosys", row.Name)

	// BSE codes resolve too.
	row, ok = dir.SearchBySymbol("500325")
	require.True(t, ok)
	assert.Equal(t, "Reliance Industries", row.Name)

	_, ok = dir.SearchBySymbol("NOPE")
	assert.False(t, ok)
}

func TestAllReturnsEveryRow(t *testing.T) {
	rows := testRows()
	dir, err := NewInMemory(rows)
	require.NoError(t, err)
	defer dir.Close()

	assert.Len(t, dir.All(), len(rows))
}

func TestLoadInstruments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instruments.json")
	data := `[
		{"name": "Infosys", "nse_symbol": "INFY", "bse_symbol": "500209", "sector": "Information Technology", "industry": "IT Services"},
		{"name": "No Symbols Here"},
		{"nse_symbol": "GHOST"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rows, err := LoadInstruments(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Infosys", rows[0].Name)
	assert.Equal(t, "INFY", rows[0].NSESymbol)
}

func TestLoadInstrumentsMissingFile(t *testing.T) {
	_, err := LoadInstruments(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadInstrumentsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	_, err := LoadInstruments(path)
	assert.Error(t, err)
}
