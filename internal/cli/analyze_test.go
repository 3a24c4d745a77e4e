package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestAnalyzeCommand_Text(t *testing.T) {
	out, err := runRoot(t, "analyze", "never odd or even")
	require.NoError(t, err)

	assert.Contains(t, out, "length:            17\n")
	assert.Contains(t, out, "is_palindrome:     false\n")
	assert.Contains(t, out, "word_count:        4\n")
	assert.Contains(t, out, `  " ": 3`)
	assert.Contains(t, out, `  "e": 4`)
}

func TestAnalyzeCommand_FrequencyLinesSorted(t *testing.T) {
	out, err := runRoot(t, "analyze", "cab")
	require.NoError(t, err)

	a := bytes.Index([]byte(out), []byte(`"a": 1`))
	b := bytes.Index([]byte(out), []byte(`"b": 1`))
	c := bytes.Index([]byte(out), []byte(`"c": 1`))
	require.True(t, a > 0 && b > 0 && c > 0, out)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	out, err := runRoot(t, "analyze", "Racecar", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			ID         string `json:"id"`
			Value      string `json:"value"`
			Properties struct {
				Length       int    `json:"length"`
				IsPalindrome bool   `json:"is_palindrome"`
				SHA256Hash   string `json:"sha256_hash"`
			} `json:"properties"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Racecar", resp.Data.Value)
	assert.Equal(t, 7, resp.Data.Properties.Length)
	assert.True(t, resp.Data.Properties.IsPalindrome)
	assert.Equal(t, resp.Data.ID, resp.Data.Properties.SHA256Hash)
	assert.Len(t, resp.Data.ID, 64)
}

func TestAnalyzeCommand_RequiresOneArg(t *testing.T) {
	_, err := runRoot(t, "analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
