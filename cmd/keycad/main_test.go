package main

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/soypat/keycad/config"
	"github.com/soypat/keycad/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func size(s config.KeyboardSize) *config.KeyboardSize { return &s }

// grouped keeps export runs fast by skipping the union.
const grouped = `{debug: {unify_export: false}, export: {cells: 8}}`

func TestRun(t *testing.T) {
	for _, test := range []struct {
		name   string
		args   args
		config string
		files  []string
		logs   []string
		err    error
	}{
		{
			name:  "dry run",
			args:  args{Matrix: "iso", Size: size(config.S80)},
			files: nil,
			logs:  []string{`"size":"S80"`, `"strategy":"planar"`, "nothing exported"},
		},
		{
			name:   "default filename",
			args:   args{Matrix: "iso", Size: size(config.S80), Export: true},
			config: grouped,
			files:  []string{"keycad-s80.stl"},
			logs:   []string{"grouped model exported"},
		},
		{
			name:   "strategy override",
			args:   args{Matrix: "iso", Size: size(config.S80), Strategy: "sloped", Export: true, Filename: "board.stl"},
			config: grouped,
			files:  []string{"board.stl"},
			logs:   []string{`"strategy":"sloped"`},
		},
		{
			name:   "size from config",
			args:   args{Matrix: "iso", Plan: true},
			config: `{layout: {size: "S80"}}`,
			files:  []string{"keycad-s80-plan.png"},
			logs:   []string{`"size":"S80"`, "plan written"},
		},
		{
			name: "unsupported size",
			args: args{Matrix: "iso", Size: size(config.S60)},
			err:  layout.ErrUnsupportedSize,
		},
		{
			name: "unknown catalog",
			args: args{Matrix: "qwertz"},
			err:  layout.ErrUnknownCatalog,
		},
		{
			name: "unknown strategy",
			args: args{Matrix: "iso", Size: size(config.S80), Strategy: "wavy"},
			err:  config.ErrInvalid,
		},
		{
			name:   "single cell export",
			args:   args{Matrix: "iso", Export: true},
			config: `{export: {cells: 1}}`,
			err:    config.ErrInvalid,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			dir := t.TempDir()
			a := test.args
			if test.config != "" {
				a.Config = filepath.Join(t.TempDir(), "keycad.json5")
				require.NoError(t, os.WriteFile(a.Config, []byte(test.config), 0o644))
			}
			var buf bytes.Buffer
			err := run(a, dir, &buf)
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			var files []string
			for _, e := range entries {
				files = append(files, e.Name())
				info, err := e.Info()
				require.NoError(t, err)
				assert.NotZero(t, info.Size(), e.Name())
			}
			sort.Strings(files)
			assert.Equal(t, test.files, files)
			for _, l := range test.logs {
				assert.Contains(t, buf.String(), l)
			}
		})
	}
}

func TestList(t *testing.T) {
	var buf bytes.Buffer
	list(&buf)
	assert.Contains(t, buf.String(), "  iso\n")
	assert.Contains(t, buf.String(), "sloped")
}
