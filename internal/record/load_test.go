package record

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadGold(t *testing.T) {
	path := writeFile(t, "gold.json", `[
  {"doc_id": "DEV-1", "incident_type": "Bombing", "weapon": ["bomb", "dynamite"], "date": null},
  {"doc_id": 17, "incident_type": "Attack", "casualties": 3, "claimed": true}
]`)

	records, err := LoadGold(path, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "DEV-1", records[0].DocID)
	assert.Equal(t, "bomb dynamite", records[0].Value("weapon"))
	assert.Equal(t, "", records[0].Value("date"))
	_, hasID := records[0].Fields["doc_id"]
	assert.False(t, hasID)

	assert.Equal(t, "17", records[1].DocID)
	assert.Equal(t, "3", records[1].Value("casualties"))
	assert.Equal(t, "true", records[1].Value("claimed"))
}

func TestLoadPredictionsReadsTemplateSubObject(t *testing.T) {
	path := writeFile(t, "pred.json", `[
  {"doc_id": "1", "filledTemplate": {"weapon": "rifle", "doc_id": "ignored"}, "raw_output": "..."},
  {"doc_id": "2"},
  {"doc_id": "3", "filledTemplate": null}
]`)

	records, err := LoadPredictions(path, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, map[string]string{"weapon": "rifle"}, records[0].Fields)
	assert.Empty(t, records[1].Fields)
	assert.Empty(t, records[2].Fields)
}

func TestLoadCustomFieldNames(t *testing.T) {
	path := writeFile(t, "pred.json", `[{"id": "9", "template": {"target": "bus"}}]`)

	records, err := LoadPredictions(path, LoadOptions{DocIDField: "id", TemplateField: "template"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "9", records[0].DocID)
	assert.Equal(t, "bus", records[0].Value("target"))
}

func TestLoadJSONLines(t *testing.T) {
	path := writeFile(t, "gold.jsonl", "{\"doc_id\": \"1\", \"weapon\": \"bomb\"}\n\n{\"doc_id\": \"2\", \"weapon\": \"rifle\"}\n")

	records, err := LoadGold(path, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "rifle", records[1].Value("weapon"))
}

func TestLoadRejectsMissingDocID(t *testing.T) {
	path := writeFile(t, "gold.json", `[{"doc_id": "1"}, {"weapon": "bomb"}]`)

	_, err := LoadGold(path, LoadOptions{})
	require.Error(t, err)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "gold", inputErr.Input)
	assert.Equal(t, path, inputErr.Path)
	require.NotEmpty(t, inputErr.Issues)
	assert.Equal(t, "/1", inputErr.Issues[0].Location)
	assert.Contains(t, err.Error(), "doc_id")
}

func TestLoadRejectsNonObjectTemplate(t *testing.T) {
	path := writeFile(t, "pred.json", `[{"doc_id": "1", "filledTemplate": "bomb"}]`)

	_, err := LoadPredictions(path, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "predictions input")
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	cases := map[string]string{
		"truncated":  `[{"doc_id": "1"`,
		"not array":  `{"doc_id": "1"}`,
		"two values": `[] []`,
		"empty id":   `[{"doc_id": ""}]`,
		"boolean id": `[{"doc_id": true}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "gold.json", body)
			_, err := LoadGold(path, LoadOptions{})
			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadGold(filepath.Join(t.TempDir(), "missing.json"), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsTrailingJSONDocument(t *testing.T) {
	path := writeFile(t, "gold.json", `[{"doc_id": "1", "weapon": "bomb"}] [{"doc_id": "2"}]`)

	_, err := LoadGold(path, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple documents are not supported")
}
