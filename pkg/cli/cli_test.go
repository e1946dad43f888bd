package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thryce/site/pkg/contact"
	"github.com/thryce/site/pkg/observability"
)

// execute 用全新的命令树执行一次，返回 stdout 和 stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(observability.ResetForTest)

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// isolateStorage 把 gdata 的存储目录指向临时 HOME
func isolateStorage(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("THRYCE_THEME_APP_NAME", "thryce_cli_test")
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestRootCmd_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"run", "term", "theme", "contact"} {
		assert.Contains(t, out, sub)
	}
}

func TestRootCmd_BadConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", "/nonexistent/thryce.yaml", "theme", "get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestThemeCmd_DefaultsToLight(t *testing.T) {
	isolateStorage(t)

	out, _, err := execute(t, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, _, err = execute(t, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)
}

func TestThemeCmd_SetPersists(t *testing.T) {
	isolateStorage(t)

	out, _, err := execute(t, "theme", "set", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, _, err = execute(t, "theme", "get")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)
}

func TestThemeCmd_Toggle(t *testing.T) {
	isolateStorage(t)

	out, _, err := execute(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, _, err = execute(t, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)
}

func TestThemeCmd_SetRejectsUnknown(t *testing.T) {
	isolateStorage(t)

	_, _, err := execute(t, "theme", "set", "sepia")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")

	_, _, err = execute(t, "theme", "set")
	assert.Error(t, err)
}

func TestContactSend(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	t.Setenv("THRYCE_CONTACT_ENDPOINT", srv.URL)
	t.Setenv("THRYCE_CONTACT_SERVICE_ID", "svc")
	t.Setenv("THRYCE_CONTACT_TEMPLATE_ID", "tpl")
	t.Setenv("THRYCE_CONTACT_PUBLIC_KEY", "key")

	out, _, err := execute(t, "contact", "send",
		"--name", "Ada", "--email", "ada@example.com",
		"--subject", "Hi", "--message", "Hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "message sent ("))
	assert.Contains(t, body, `"service_id":"svc"`)
	assert.Contains(t, body, `"reply_to":"ada@example.com"`)
}

func TestContactSend_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The Public Key is invalid", http.StatusUnauthorized)
	}))
	defer srv.Close()

	t.Setenv("THRYCE_CONTACT_ENDPOINT", srv.URL)
	t.Setenv("THRYCE_CONTACT_SERVICE_ID", "svc")
	t.Setenv("THRYCE_CONTACT_TEMPLATE_ID", "tpl")
	t.Setenv("THRYCE_CONTACT_PUBLIC_KEY", "bad")

	_, errOut, err := execute(t, "contact", "send",
		"--name", "Ada", "--email", "ada@example.com",
		"--subject", "Hi", "--message", "Hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, contact.ErrRelayRejected)
	assert.Contains(t, errOut, "hint:")
}

func TestContactSend_InvalidForm(t *testing.T) {
	_, _, err := execute(t, "contact", "send", "--name", "Ada")
	require.Error(t, err)
	assert.ErrorIs(t, err, contact.ErrInvalidForm)
}
