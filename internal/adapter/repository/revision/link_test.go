package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLinkStoresBasenameOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a.json~1")
	link := filepath.Join(dir, "a.json~current")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0644))

	require.NoError(t, writeLink(target, link))

	stored, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "a.json~1", stored)
}

func TestWriteLinkReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "a.json~current")
	require.NoError(t, writeLink(filepath.Join(dir, "a.json~1"), link))
	require.NoError(t, writeLink(filepath.Join(dir, "a.json~2"), link))

	stored, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "a.json~2", stored)
}

func TestReadLinkResolvesRelativeTarget(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "a.json~current")
	require.NoError(t, writeLink(filepath.Join(dir, "a.json~3"), link))

	target, err := readLink(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.json~3"), target)
}

func TestReadLinkKeepsLegacyAbsoluteTarget(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "a.json~current")
	require.NoError(t, os.Symlink(filepath.Join(dir, "a.json~3"), link))

	target, err := readLink(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.json~3"), target)
}

func TestReadLinkMissing(t *testing.T) {
	_, err := readLink(filepath.Join(t.TempDir(), "absent~current"))
	assert.Error(t, err)
}
