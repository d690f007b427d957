package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]

		return v, ok
	}
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name         string
		args         []string
		env          map[string]string
		readOnly     bool
		expectCode   int
		expectStderr string
		expectReport bool
	}{
		{
			name:         "Report written",
			args:         []string{"--dir-path", "/ctf", "--output-path", "/out"},
			expectReport: true,
		},
		{
			name:         "Report cannot be created",
			readOnly:     true,
			expectStderr: "Error writing to README.md: ",
		},
		{
			name:         "Report cannot be created, strict flag",
			args:         []string{"--strict"},
			readOnly:     true,
			expectCode:   1,
			expectStderr: "Error writing to README.md: ",
		},
		{
			name:         "Report cannot be created, strict env",
			env:          map[string]string{"CHALLTABLE_STRICT": "true"},
			readOnly:     true,
			expectCode:   1,
			expectStderr: "Error writing to README.md: ",
		},
		{
			name:         "Broken config file",
			args:         []string{"-c", "/bad.yml"},
			expectStderr: "Error loading config: ",
		},
		{
			name:         "Broken config file, strict flag",
			args:         []string{"--strict", "-c", "/bad.yml"},
			expectCode:   1,
			expectStderr: "Error loading config: ",
		},
		{
			name:         "Broken config file, strict env",
			args:         []string{"-c", "/bad.yml"},
			env:          map[string]string{"CHALLTABLE_STRICT": "true"},
			expectCode:   1,
			expectStderr: "Error loading config: ",
		},
		{
			name:         "Unknown flag",
			args:         []string{"--nope"},
			expectCode:   2,
			expectStderr: "flag provided but not defined: -nope",
		},
		{
			name:         "Help",
			args:         []string{"-h"},
			expectStderr: "Usage of challtable:",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var fs afero.Fs = afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/bad.yml", []byte("report: [\n"), 0o644))
			require.NoError(t, afero.WriteFile(fs, "/ctf/a/challenge.yml", []byte("name: A\nauthor: X\ncategory: web\ntags: [a]\n"), 0o644))
			require.NoError(t, afero.WriteFile(fs, "/ctf/a/tested.yml", []byte("tested: true\n"), 0o644))
			require.NoError(t, fs.MkdirAll("/out", 0o755))

			if tc.readOnly {
				fs = afero.NewReadOnlyFs(fs)
			}

			var stderr bytes.Buffer
			code := run(tc.args, lookupMap(tc.env), fs, &stderr)

			assert.Equal(t, tc.expectCode, code)

			if tc.expectStderr != "" {
				assert.Contains(t, stderr.String(), tc.expectStderr)
				assert.Equal(t, 1, strings.Count(stderr.String(), tc.expectStderr), "single message expected")
			}

			if tc.expectReport {
				content, err := afero.ReadFile(fs, "/out/README.md")
				require.NoError(t, err)
				assert.Equal(t,
					"| tested | name | author | category | tags |\n"+
						"|--------|------|--------|----------|------|\n"+
						"| true | A | X | web | a |\n",
					string(content),
				)
				assert.NotContains(t, stderr.String(), "Error")
			}
		})
	}
}
