package delimited

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"plain", `a,b,c`, []string{"a", "b", "c"}},
		{"quoted", `"KSFO","San Francisco International","US"`, []string{"KSFO", "San Francisco International", "US"}},
		{"comma inside quotes", `"1","Oakland, CA",x`, []string{"1", "Oakland, CA", "x"}},
		{"trims whitespace", ` a , "b " ,c `, []string{"a", "b", "c"}},
		{"empty fields", `a,,"",d`, []string{"a", "", "", "d"}},
		{"trailing comma", `a,b,`, []string{"a", "b", ""}},
		{"single field", `only`, []string{"only"}},
		{"doubled quote toggles twice", `"say ""hi""",x`, []string{"say hi", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitLine(tt.line))
		})
	}
}

func TestReader_PadsRaggedRowsAndSkipsBlankLines(t *testing.T) {
	input := "\"ident\",\"type\",\"name\"\r\n" +
		"\"KAAA\",\"small_airport\",\"Alpha\"\r\n" +
		"\n" +
		"\"KBBB\"\n" +
		"\"KCCC\",\"heliport\",\"Charlie\",\"extra\"\n" +
		"   \n"

	r := NewReader(strings.NewReader(input))

	header, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"ident", "type", "name"}, header)
	assert.Equal(t, header, r.Header())

	row, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"KAAA", "small_airport", "Alpha"}, row)

	row, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"KBBB", "", ""}, row)

	row, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"KCCC", "heliport", "Charlie"}, row)

	_, err = r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReadTable(t *testing.T) {
	header, rows, err := ReadTable(strings.NewReader("FIX_ID,LAT\nABCDE,40.1\nXYZ\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"FIX_ID", "LAT"}, header)
	assert.Equal(t, [][]string{{"ABCDE", "40.1"}, {"XYZ", ""}}, rows)
}

func TestReadTable_Empty(t *testing.T) {
	header, rows, err := ReadTable(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Nil(t, header)
	assert.Empty(t, rows)
}
