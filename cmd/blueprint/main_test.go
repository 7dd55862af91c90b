package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contactBlueprint = `title: Contact
validation: strict
form:
  fields:
    name:
      type: text
      label: Name
      validate:
        required: true
    email:
      type: email
      label: Email
`

func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	bpDir := filepath.Join(dir, "blueprints")
	require.NoError(t, os.MkdirAll(bpDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bpDir, "contact.yaml"), []byte(contactBlueprint), 0o644))

	t.Setenv("BLUEPRINT_BLUEPRINTS_DIR", bpDir)
	t.Setenv("BLUEPRINT_METRICS", "false")
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return -1
}

func TestValidateCommand(t *testing.T) {
	dir := setup(t)

	t.Run("valid", func(t *testing.T) {
		payload := writeFile(t, dir, "ok.json", `{"name":"Ann"}`)
		out, err := run(t, "", "validate", "contact", payload)
		require.NoError(t, err)
		assert.Contains(t, out, "contact: payload is valid")
	})

	t.Run("invalid fields", func(t *testing.T) {
		payload := writeFile(t, dir, "bad.yaml", "email: nope\n")
		out, err := run(t, "", "validate", "contact", payload)
		assert.Equal(t, exitInvalid, exitCode(err))
		assert.Contains(t, out, "name: Missing required field: Name")
	})

	t.Run("localized", func(t *testing.T) {
		out, err := run(t, `{}`, "validate", "contact", "-", "--lang", "de")
		assert.Equal(t, exitInvalid, exitCode(err))
		assert.Contains(t, out, "name: Pflichtfeld fehlt: Name")
	})

	t.Run("schema violation as JSON", func(t *testing.T) {
		out, err := run(t, `{"name":"Ann","admin":true}`, "validate", "contact", "-", "--format", "json")
		assert.Equal(t, exitViolation, exitCode(err))

		var report validateReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "schema_violation", report.Outcome)
		require.NotNil(t, report.Violation)
		assert.Equal(t, "admin", report.Violation.Key)
	})

	t.Run("unknown blueprint", func(t *testing.T) {
		_, err := run(t, `{}`, "validate", "missing", "-")
		require.Error(t, err)
		assert.Equal(t, -1, exitCode(err))
	})

	t.Run("bad format flag", func(t *testing.T) {
		_, err := run(t, `{}`, "validate", "contact", "-", "--format", "xml")
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestFilterCommand(t *testing.T) {
	setup(t)

	out, err := run(t, `{"email":" ANN@example.com ","admin":1}`, "filter", "contact", "-", "--missing-null", "--compact")
	require.NoError(t, err)
	assert.Equal(t, `{"name":null,"email":"ann@example.com"}`+"\n", out)
}

func TestTypesCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "", "types", "contact")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"PATH", "TYPE", "FLAGS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"name", "text", "required"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"email", "email"}, strings.Fields(lines[2]))
}

func TestBlueprintsFlag(t *testing.T) {
	dir := setup(t)
	t.Setenv("BLUEPRINT_BLUEPRINTS_DIR", filepath.Join(dir, "absent"))

	_, err := run(t, "", "types", "contact")
	require.Error(t, err)

	_, err = run(t, "", "types", "contact", "--blueprints", filepath.Join(dir, "blueprints"))
	require.NoError(t, err)
}

func TestInvalidConfig(t *testing.T) {
	setup(t)
	t.Setenv("BLUEPRINT_LOG_FORMAT", "xml")

	_, err := run(t, "", "types", "contact")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("BLUEPRINT_BLUEPRINTS_DIR", filepath.Join(t.TempDir(), "absent"))

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "blueprint "+Version)
	assert.Contains(t, out, "Go Version:")
}
