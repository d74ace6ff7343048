package normalize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSynonymsCleansEntries(t *testing.T) {
	table, err := NewSynonyms(map[string]string{
		"The Car-Bomb": "Vehicle Bomb",
	})
	require.NoError(t, err)

	canonical, ok := table.Lookup("carbomb")
	require.True(t, ok)
	assert.Equal(t, "vehicle bomb", canonical)
}

func TestNewSynonymsRejectsChains(t *testing.T) {
	_, err := NewSynonyms(map[string]string{
		"grenade":      "hand grenade",
		"hand grenade": "hand grenades",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rewritten")
}

func TestNewSynonymsRejectsEmptyEntries(t *testing.T) {
	_, err := NewSynonyms(map[string]string{"(none)": "attack"})
	require.Error(t, err)
}

func TestNewSynonymsRejectsConflicts(t *testing.T) {
	_, err := NewSynonyms(map[string]string{
		"Bomb":  "bombing",
		"bomb!": "explosive",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts")
}

func TestDefaultSynonymsAreStable(t *testing.T) {
	table, err := NewSynonyms(DefaultSynonyms())
	require.NoError(t, err)
	assert.Equal(t, DefaultSynonyms(), table)
}

func TestLoadSynonymsYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "synonyms.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("explosion: bombing\nMolotov Cocktail: incendiary device\n"), 0o644))
	jsonPath := filepath.Join(dir, "synonyms.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"explosion": "bombing", "Molotov Cocktail": "incendiary device"}`), 0o644))

	fromYAML, err := LoadSynonyms(yamlPath)
	require.NoError(t, err)
	fromJSON, err := LoadSynonyms(jsonPath)
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
	assert.Equal(t, "incendiary device", fromYAML["molotov cocktail"])
}

func TestLoadSynonymsMissingFile(t *testing.T) {
	_, err := LoadSynonyms(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read synonyms")
}

func TestLoadSynonymsRejectsSecondDocument(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"synonyms.yml":  "explosion: bombing\n---\nother: thing\n",
		"synonyms.json": `{"explosion": "bombing"} {"other": "thing"}`,
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := LoadSynonyms(path)
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "multiple documents are not supported", name)
	}
}
