package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorygame/internal/catalog"
	"memorygame/internal/progress"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHome("~/.memorygame")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".memorygame"), got)

	got, err = expandHome("/tmp/data")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/data", got)
}

func TestOpenApp_PersistsProfile(t *testing.T) {
	dir := t.TempDir()
	viper.Set("data", dir)
	viper.Set("log-level", "info")
	t.Cleanup(viper.Reset)

	a, err := openApp(appOptions{history: true})
	require.NoError(t, err)
	assert.Equal(t, "Ana", a.profile.SetAlias("  Ana  "))
	err = a.profile.Purchase(catalog.KindTheme, "Fruits & Veggies")
	assert.ErrorIs(t, err, progress.ErrAlreadyUnlocked)
	a.Close()

	assert.FileExists(t, filepath.Join(dir, profileFile))
	assert.FileExists(t, filepath.Join(dir, historyFile))

	a, err = openApp(appOptions{interactive: true})
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, "Ana", a.profile.Alias())
	assert.Nil(t, a.history)
}
