package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/svm2cv/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {

	dir := t.TempDir()
	p := filepath.Join(dir, "svm.xml")

	err := Save(p, []byte("<opencv_storage/>"))
	require.NoError(t, err)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "<opencv_storage/>", string(b))

	// overwrite keeps a single file in place
	err = Save(p, []byte("<opencv_storage></opencv_storage>"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "svm.xml", entries[0].Name())
}

func TestSave_MissingDir(t *testing.T) {

	dir := t.TempDir()
	p := filepath.Join(dir, "missing", "svm.xml")

	err := Save(p, []byte("payload"))
	assert.ErrorIs(t, err, storage.CouldNotStoreErr)

	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestSave_TargetIsDir(t *testing.T) {

	dir := t.TempDir()
	p := filepath.Join(dir, "svm.xml")
	require.NoError(t, os.Mkdir(p, 0755))

	err := Save(p, []byte("payload"))
	assert.ErrorIs(t, err, storage.CouldNotStoreErr)

	// no temp file is left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, len(entries))
}

func TestReadLines(t *testing.T) {

	type test struct {
		content string
		lines   []string
	}

	tests := map[string]test{
		"empty": {
			content: "",
			lines:   []string{},
		},
		"unix": {
			content: "svm_type c_svc\nkernel_type rbf\n",
			lines:   []string{"svm_type c_svc", "kernel_type rbf"},
		},
		"windows": {
			content: "svm_type c_svc\r\nkernel_type rbf\r\n",
			lines:   []string{"svm_type c_svc", "kernel_type rbf"},
		},
		"no-trailing-newline": {
			content: "SV\n1 1:0.5",
			lines:   []string{"SV", "1 1:0.5"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "svm.model")
			require.NoError(t, os.WriteFile(p, []byte(tt.content), 0644))

			lines, err := New(p).Lines()
			require.NoError(t, err)
			assert.Equal(t, tt.lines, lines)
		})
	}
}

func TestReadLines_NotFound(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "svm.model"))
	assert.ErrorIs(t, err, storage.NotFoundErr)
	assert.Contains(t, err.Error(), "svm.model")
}

func TestFile(t *testing.T) {

	p := filepath.Join(t.TempDir(), "svm.xml")
	f := New(p)
	assert.Equal(t, p, f.Path())

	require.NoError(t, f.Store([]byte("svm_type c_svc\nSV\n")))
	lines, err := f.Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"svm_type c_svc", "SV"}, lines)
}
