package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/goscrape/internal/app"
	"github.com/hyperifyio/goscrape/scrape"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "goscrape [tag [attribute [value]]]", newRootCmd().Use)
}

func TestRootCmd_HasVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, app.BuildVersion)
}

func TestRootCmd_StdinText(t *testing.T) {
	out, err := execute(t, `<html><body><div id='hello'>Hello World!</div></body></html>`,
		"-i", "-", "-m", "text", "--cache.dir", "", "div", "id", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello World!\n", out)
}

func TestRootCmd_FileAttr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<p><a href="/a">a</a><a href="/b">b</a></p>`), 0o600))

	out, err := execute(t, "", "--input", path, "--mode", "attr", "--attr", "href", "a")
	require.NoError(t, err)
	assert.Equal(t, "/a/b\n", out)
}

func TestRootCmd_ConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<ul><li class="x">one</li><li>two</li></ul>`), 0o600))
	cfgPath := filepath.Join(dir, "goscrape.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("input: %s\nmode: inner\nselector: [li, class]\n", page)), 0o600))

	out, err := execute(t, "", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "one\n", out)

	out, err = execute(t, "", "--config", cfgPath, "-m", "html", "li")
	require.NoError(t, err)
	assert.Equal(t, `<li class="x">one</li><li>two</li>`+"\n", out)
}

func TestRootCmd_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<div><b>bold</b></div>`), 0o600))
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("GOSCRAPE_MODE=text\n"), 0o600))
	t.Setenv(app.EnvInput, page)
	t.Setenv(app.EnvMode, "")
	require.NoError(t, os.Unsetenv(app.EnvMode))

	out, err := execute(t, "", "--env-file", envPath, "b")
	require.NoError(t, err)
	assert.Equal(t, "bold\n", out)
}

func TestRootCmd_Errors(t *testing.T) {
	_, err := execute(t, "")
	assert.ErrorIs(t, err, app.ErrNoInput)

	_, err = execute(t, "", "-i", "-", "a", "b", "c", "d")
	assert.Error(t, err)

	_, err = execute(t, "no markup", "-i", "-")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "-i", "-")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(fmt.Errorf("stdin: %w", scrape.ErrInvalidInput)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
