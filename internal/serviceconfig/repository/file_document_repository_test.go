package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/configd/internal/errors"
	configDomain "github.com/allisson/configd/internal/serviceconfig/domain"
)

func writeDocument(t *testing.T, configDir, name, content string) {
	t.Helper()
	dir := filepath.Join(configDir, "services")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFileDocumentRepository_Load(t *testing.T) {
	ctx := context.Background()
	configDir := t.TempDir()
	repo := NewFileDocumentRepository(configDir)

	writeDocument(t, configDir, "fks_ai.yaml", "service:\n  name: fks_ai\n")
	writeDocument(t, configDir, "empty.yaml", "")
	writeDocument(t, configDir, "broken.yaml", "- not\n- a mapping\n")

	t.Run("existing document", func(t *testing.T) {
		doc, err := repo.Load(ctx, "fks_ai")
		require.NoError(t, err)

		v, err := doc.Value()
		require.NoError(t, err)
		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `{"service":{"name":"fks_ai"}}`, string(out))
	})

	t.Run("empty file is empty mapping", func(t *testing.T) {
		doc, err := repo.Load(ctx, "empty")
		require.NoError(t, err)

		v, err := doc.Value()
		require.NoError(t, err)
		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(out))
	})

	t.Run("absent service", func(t *testing.T) {
		_, err := repo.Load(ctx, "missing")
		assert.ErrorIs(t, err, configDomain.ErrServiceNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := repo.Load(ctx, "broken")
		assert.ErrorIs(t, err, configDomain.ErrMalformedDocument)
	})

	t.Run("unsafe name", func(t *testing.T) {
		_, err := repo.Load(ctx, "../secrets")
		assert.ErrorIs(t, err, configDomain.ErrInvalidServiceName)
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.Load(canceled, "fks_ai")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileDocumentRepository_Save(t *testing.T) {
	ctx := context.Background()
	configDir := t.TempDir()
	repo := NewFileDocumentRepository(configDir)

	doc, err := configDomain.ParseDocument([]byte("zeta: 1\nalpha:\n  b: 2\n  a: 1\n"))
	require.NoError(t, err)

	path, err := configDomain.ParseDotPath("alpha.c")
	require.NoError(t, err)
	value, err := configDomain.ValueFromJSON([]byte(`true`))
	require.NoError(t, err)
	require.NoError(t, doc.Assign(path, value))

	require.NoError(t, repo.Save(ctx, "fks_ai", doc))

	file := filepath.Join(configDir, "services", "fks_ai.yaml")
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "zeta: 1\nalpha:\n  b: 2\n  a: 1\n  c: true\n", string(data))

	reloaded, err := repo.Load(ctx, "fks_ai")
	require.NoError(t, err)
	v, err := reloaded.Value()
	require.NoError(t, err)
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":{"b":2,"a":1,"c":true}}`, string(out))

	t.Run("rejects unsafe name", func(t *testing.T) {
		err := repo.Save(ctx, "a/b", configDomain.NewDocument())
		assert.ErrorIs(t, err, configDomain.ErrInvalidServiceName)
	})
}

func TestFileDocumentRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("missing directory", func(t *testing.T) {
		repo := NewFileDocumentRepository(t.TempDir())

		services, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, services)
	})

	t.Run("yaml files sorted by name", func(t *testing.T) {
		configDir := t.TempDir()
		repo := NewFileDocumentRepository(configDir)

		writeDocument(t, configDir, "fks_web.yaml", "a: 1\n")
		writeDocument(t, configDir, "fks_ai.yaml", "a: 1\n")
		writeDocument(t, configDir, "notes.txt", "ignored")
		writeDocument(t, configDir, "legacy.yml", "ignored: true\n")
		writeDocument(t, configDir, ".hidden.yaml", "ignored: true\n")
		require.NoError(t, os.MkdirAll(filepath.Join(configDir, "services", "nested.yaml"), 0o755))

		services, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []configDomain.ServiceInfo{
			{Name: "fks_ai", ConfigFile: "services/fks_ai.yaml"},
			{Name: "fks_web", ConfigFile: "services/fks_web.yaml"},
		}, services)
	})
}

func TestFileDocumentRepository_Ping(t *testing.T) {
	ctx := context.Background()
	configDir := t.TempDir()
	repo := NewFileDocumentRepository(configDir)

	assert.Error(t, repo.Ping(ctx))

	require.NoError(t, os.MkdirAll(filepath.Join(configDir, "services"), 0o755))
	assert.NoError(t, repo.Ping(ctx))
}
