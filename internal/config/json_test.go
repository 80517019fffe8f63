package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParseJSON_AllFields(t *testing.T) {
	path := writeTempJSONConfig(t, `{
		"bot": {
			"token": "123:abc",
			"admin_id": 1001,
			"poll_timeout": "45s"
		},
		"storage": {
			"db": {"path": "/var/lib/crypto-locker/vault.db"}
		},
		"encryption": {
			"passphrase": "correct horse battery staple",
			"salt_file": "/etc/crypto-locker/salt",
			"iterations": 100000
		},
		"session": {
			"ttl": "5m",
			"sweep_interval": "90s"
		}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, int64(1001), cfg.Bot.AdminID)
	assert.Equal(t, 45*time.Second, cfg.Bot.PollTimeout)
	assert.Equal(t, "/var/lib/crypto-locker/vault.db", cfg.Storage.DB.Path)
	assert.Equal(t, "correct horse battery staple", cfg.Encryption.Passphrase)
	assert.Equal(t, "/etc/crypto-locker/salt", cfg.Encryption.SaltFile)
	assert.Equal(t, 100000, cfg.Encryption.Iterations)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 90*time.Second, cfg.Session.SweepInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := writeTempJSONConfig(t, `{"bot": `)

	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", input: `"1h"`, want: time.Hour},
		{name: "seconds string", input: `"30s"`, want: 30 * time.Second},
		{name: "raw nanoseconds", input: `1000000000`, want: time.Second},
		{name: "invalid string", input: `"five minutes"`, wantErr: true},
		{name: "invalid json", input: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	raw, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(raw))
}
