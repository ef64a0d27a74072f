package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteCodec struct{}

func (noteCodec) Header() []string       { return []string{"id", "text"} }
func (noteCodec) Encode(n note) []string { return []string{n.ID, n.Text} }

func (noteCodec) Decode(row []string) (note, error) {
	return note{ID: row[0], Text: row[1]}, nil
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")

	tbl := NewTable[note]()
	require.NoError(t, tbl.Add(note{ID: "n1", Text: "plain"}))
	require.NoError(t, tbl.Add(note{ID: "n2", Text: "with, comma and \"quotes\""}))

	require.NoError(t, SaveCSV(path, noteCodec{}, tbl))

	loaded := NewTable[note]()
	require.NoError(t, LoadCSV(path, noteCodec{}, loaded))

	assert.Equal(t, tbl.List(), loaded.List())
}

func TestLoadCSVMissingFile(t *testing.T) {
	tbl := NewTable[note]()
	err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"), noteCodec{}, tbl)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCSVHeaderMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,body\nn1,x\n"), 0o644))

	tbl := NewTable[note]()
	err := LoadCSV(path, noteCodec{}, tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"body"`)
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	tbl := NewTable[note]()
	err := LoadCSV(path, noteCodec{}, tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header")
}
