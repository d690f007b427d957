package app

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/jgivc/challtable/internal/adapter/mdadapter"
	"github.com/jgivc/challtable/internal/common"
	"github.com/jgivc/challtable/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()

	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/ctf/chal_a/challenge.yml": "name: A\nauthor: X\ncategory: web\ntags: [a, b]\n",
		"/ctf/chal_a/tested.yml":    "tested: true\n",
		"/ctf/chal_b/tested.yml":    "tested: true\n",
	})

	cfg := &config.Config{}
	cfg.SetDefaults()
	cfg.ReportConfig.DirPath = "/ctf"
	cfg.ReportConfig.OutputPath = "/ctf"
	cfg.ReportConfig.HTML = true

	var logBuf bytes.Buffer
	err := New(cfg, fs, &logBuf).Run(context.Background())
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "/ctf/README.md")
	require.NoError(t, err)
	assert.Equal(t,
		"| tested | name | author | category | tags |\n"+
			"|--------|------|--------|----------|------|\n"+
			"| true | A | X | web | a, b |\n",
		string(content),
	)

	exists, err := afero.Exists(fs, "/ctf/README.html")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Contains(t, logBuf.String(), "Report written")
	assert.Contains(t, logBuf.String(), "rows=1")
	assert.Contains(t, logBuf.String(), "run_id=")
	assert.NotContains(t, logBuf.String(), "Skip entry")
}

func TestRunExtendedGlyph(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/ctf/chal/task.yml":   "name: A\nauthor: X\ncategory: web\ntags: []\n",
		"/ctf/chal/tested.yml": "tested: false\ntester: bob\nsolver: alice\ntested_url: http://x\n",
	})

	cfg := &config.Config{}
	cfg.SetDefaults()
	cfg.LogLevel = config.LogLevelDebug
	cfg.LoaderConfig.ChallengeFileName = "task.yml"
	cfg.ReportConfig.DirPath = "/ctf"
	cfg.ReportConfig.OutputPath = "/reports"
	cfg.ReportConfig.Schema = mdadapter.SchemaExtended
	cfg.ReportConfig.TestedStyle = mdadapter.StyleGlyph.String()

	var logBuf bytes.Buffer
	err := New(cfg, fs, &logBuf).Run(context.Background())
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "/reports/TESTED.md")
	require.NoError(t, err)
	assert.Equal(t,
		"| tested | name | author | category | tags | tester | tested_url |\n"+
			"|--------|------|--------|----------|------|--------|------------|\n"+
			"| ❌ | A | X | web |  | bob | http://x |\n",
		string(content),
	)
	assert.NotContains(t, string(content), "alice")
	assert.Contains(t, logBuf.String(), "Skip entry")
}

func TestRunCannotCreateReport(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	cfg := &config.Config{}
	cfg.SetDefaults()

	var logBuf bytes.Buffer
	err := New(cfg, fs, &logBuf).Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrIO)
	assert.Contains(t, err.Error(), "cannot create README.md")
	assert.Empty(t, logBuf.String())
}

func TestReportFile(t *testing.T) {
	testCases := []struct {
		name       string
		schema     string
		outputPath string
		outputName string
		expected   string
	}{
		{
			name:       "Minimal default",
			schema:     mdadapter.SchemaMinimal,
			outputPath: "./",
			expected:   "README.md",
		},
		{
			name:       "Extended default",
			schema:     mdadapter.SchemaExtended,
			outputPath: "/reports",
			expected:   "/reports/TESTED.md",
		},
		{
			name:       "Explicit name",
			schema:     mdadapter.SchemaExtended,
			outputPath: "/reports",
			outputName: "CHALLENGES.md",
			expected:   "/reports/CHALLENGES.md",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.SetDefaults()
			cfg.ReportConfig.Schema = tc.schema
			cfg.ReportConfig.OutputPath = tc.outputPath
			cfg.ReportConfig.OutputFileName = tc.outputName

			assert.Equal(t, tc.expected, New(cfg, afero.NewMemMapFs(), io.Discard).ReportFile())
		})
	}
}
