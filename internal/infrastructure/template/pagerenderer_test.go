package template

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdesk/internal/shared/logger"
)

type testUser struct {
	Username string
	FullName string
	Role     string
}

type testPage struct {
	Title   string
	User    testUser
	Flashes []struct{ Level, Message string }
	Data    any
}

func TestPageRenderer_LoadsEmbeddedPages(t *testing.T) {
	r := NewPageRenderer("", logger.NewLogger())
	require.NoError(t, r.Load())

	for _, page := range []string{"login", "home", "computers", "computer", "computer-form", "jobs", "tickets", "ticket", "ticket-new", "operators", "error-auth"} {
		assert.True(t, r.HasPage(page), page)
	}
	assert.False(t, r.HasPage("layout"))
}

func TestPageRenderer_RenderEscapesData(t *testing.T) {
	r := NewPageRenderer("", logger.NewLogger())
	require.NoError(t, r.Load())

	var buf bytes.Buffer
	err := r.Render(&buf, "error-auth", testPage{
		Title: "Forbidden",
		User:  testUser{Username: "hd", FullName: "Help Desk", Role: "Helpdesk"},
		Data:  map[string]string{"Message": "<script>alert(1)</script>"},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Help Desk")
	assert.Contains(t, out, "Helpdesk")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>alert(1)</script>")
}

func TestPageRenderer_NoHeaderWhenAnonymous(t *testing.T) {
	r := NewPageRenderer("", logger.NewLogger())
	require.NoError(t, r.Load())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "login", testPage{
		Title: "Sign in",
		Data:  map[string]string{"Next": "/jobs"},
	}))

	assert.NotContains(t, buf.String(), `action="/logout"`)
	assert.Contains(t, buf.String(), `value="/jobs"`)
}

func TestPageRenderer_UnknownPage(t *testing.T) {
	r := NewPageRenderer("", logger.NewLogger())
	require.NoError(t, r.Load())

	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", nil))
}

func TestPageRenderer_Override(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error-auth.html"),
		[]byte(`{{define "content"}}custom denial: {{.Data.Message}}{{end}}`), 0o644))

	r := NewPageRenderer(dir, logger.NewLogger())
	require.NoError(t, r.Load())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "error-auth", testPage{Data: map[string]string{"Message": "nope"}}))
	assert.Contains(t, buf.String(), "custom denial: nope")
}

func TestPageRenderer_BrokenOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.html"), []byte(`{{define "content"}}{{.Data`), 0o644))

	assert.Error(t, NewPageRenderer(dir, logger.NewLogger()).Load())
}

func TestFuncMap_Datetime(t *testing.T) {
	format := funcMap["datetime"].(func(any) string)
	at := time.Date(2025, 2, 13, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-02-13 09:30", format(at))
	assert.Equal(t, "2025-02-13 09:30", format(&at))
	assert.Equal(t, "", format((*time.Time)(nil)))
	assert.Equal(t, "", format(time.Time{}))
}
