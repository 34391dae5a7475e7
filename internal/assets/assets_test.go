package assets_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/assets"
)

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	m := assets.NewManager(dir)

	name, err := m.Save("malware.exe", strings.NewReader("MZ"))
	require.NoError(t, err)
	assert.Empty(t, name)

	name, err = m.Save("", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Empty(t, name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not leave files behind")
}

func TestSaveAcceptsMixedCaseExtension(t *testing.T) {
	dir := t.TempDir()
	m := assets.NewManager(dir)

	name, err := m.Save("Photo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, name)
	assert.Regexp(t, regexp.MustCompile(`^Photo_\d{20}\.png$`), name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSaveSanitizesTraversal(t *testing.T) {
	dir := t.TempDir()
	m := assets.NewManager(dir)

	name, err := m.Save("../../etc/passwd.png", strings.NewReader("x"))
	require.NoError(t, err)
	require.NotEmpty(t, name)
	assert.NotContains(t, name, "..")
	assert.NotContains(t, name, "/")
	assert.Regexp(t, regexp.MustCompile(`^passwd_\d{20}\.png$`), name)

	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err, "file must land inside the asset dir")
}

func TestSaveDerivesDistinctNames(t *testing.T) {
	dir := t.TempDir()
	m := assets.NewManager(dir)

	first, err := m.Save("ring.png", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := m.Save("ring.png", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, name := range []string{first, second} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	m := assets.NewManager(dir)

	name, err := m.Save("ring.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, m.Delete(name))
	require.NoError(t, m.Delete(name), "second delete of the same file")
	require.NoError(t, m.Delete("never-existed.png"))
	require.NoError(t, m.Delete(""))
}

func TestDeleteRefusesPaths(t *testing.T) {
	m := assets.NewManager(t.TempDir())
	assert.Error(t, m.Delete("../outside.png"))
	assert.Error(t, m.Delete("sub/inside.png"))
}
