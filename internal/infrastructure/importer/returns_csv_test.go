package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		letter string
		want   int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AB", 27},
		{"BC", 54},
		{" c ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			got, err := ColumnIndex(tt.letter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-letter input", func(t *testing.T) {
		_, err := ColumnIndex("1")
		assert.Equal(t, ErrInvalidColumn, err)

		_, err = ColumnIndex("")
		assert.Equal(t, ErrInvalidColumn, err)
	})
}

func TestReturnsCSVReader_Parse(t *testing.T) {
	t.Run("reads phone and cost components from default columns", func(t *testing.T) {
		csv := "Telefon;;;Tahsilat;İade\n" // header row is skipped regardless of content
		csv = strings.ReplaceAll(csv, ";", ",")
		csv += "05551112233,x,y,100.50,25\n" +
			"+90 555 222 3344,x,y,80,0\n"

		reader := NewReturnsCSVReader()
		records, err := reader.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "05551112233", records[0].Phone)
		assert.InDelta(t, 100.50, records[0].Charged, 0.001)
		assert.InDelta(t, 25, records[0].Refunded, 0.001)
		assert.Nil(t, records[0].Cost)
		assert.Equal(t, "+90 555 222 3344", records[1].Phone)
	})

	t.Run("prefers an explicit cost column when configured", func(t *testing.T) {
		csv := "phone,cost\n5551112233,\"37,50\"\n"

		reader := NewReturnsCSVReader(WithColumns(ReturnsColumns{Phone: "A", Cost: "B"}))
		records, err := reader.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Cost)
		assert.InDelta(t, 37.50, *records[0].Cost, 0.001)
	})

	t.Run("skips rows with a blank phone cell", func(t *testing.T) {
		csv := "phone,a,b,charged,refunded\n,,,10,0\n5551112233,,,10,0\n"

		reader := NewReturnsCSVReader()
		records, err := reader.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("strips a UTF-8 BOM", func(t *testing.T) {
		csv := "\xEF\xBB\xBFphone,a,b,charged,refunded\n5551112233,,,10,0\n"

		reader := NewReturnsCSVReader()
		records, err := reader.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		reader := NewReturnsCSVReader()
		_, err := reader.Parse(strings.NewReader(""))

		assert.Equal(t, ErrEmptyFile, err)
	})

	t.Run("rejects non UTF-8 content", func(t *testing.T) {
		reader := NewReturnsCSVReader()
		_, err := reader.Parse(strings.NewReader("telefon\n\xFF\xFE5551112233\n"))

		assert.Equal(t, ErrInvalidEncoding, err)
	})

	t.Run("treats the first row as data without a header", func(t *testing.T) {
		csv := "5551112233,,,10,0\n"

		reader := NewReturnsCSVReader(WithoutHeader())
		records, err := reader.Parse(strings.NewReader(csv))

		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}
