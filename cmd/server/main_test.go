// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"bytes"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, sub := range []string{"serve", "migrate"} {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
	assert.Contains(t, output, "--database-dsn")
}

func TestMigrateCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"migrate", "--help"})

	require.NoError(t, cmd.Execute())

	for _, sub := range []string{"down", "status"} {
		assert.Contains(t, buf.String(), sub)
	}
}

func TestMigrateCommand_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing dsn",
			args: []string{"migrate"},
		},
		{
			name: "mongo driver",
			args: []string{"migrate", "--storage-driver", "mongo", "--mongo-uri", "mongodb://localhost:27017"},
		},
		{
			name: "status with mongo driver",
			args: []string{"migrate", "status", "--storage-driver", "mongo", "--mongo-uri", "mongodb://localhost:27017"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORAGE_DB_DATABASE_URI", "")
			t.Setenv("STORAGE_DRIVER", "")
			t.Setenv("CONFIG", "")

			cmd := NewRootCmd()
			cmd.SetOut(new(bytes.Buffer))
			cmd.SetErr(new(bytes.Buffer))
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)

			oopsErr, ok := oops.AsOops(err)
			require.True(t, ok)
			assert.Equal(t, "CONFIG_INVALID", oopsErr.Code())
		})
	}
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "")
	t.Setenv("CONFIG", "")

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"serve", "--token-sign-key", ""})

	err := cmd.Execute()
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, "CONFIG_INVALID", oopsErr.Code())
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "v1.2.0", orNA("v1.2.0"))
}
