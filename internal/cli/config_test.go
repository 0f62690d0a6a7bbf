package cli

import (
	"strings"
	"testing"

	"github.com/tsinit-dev/tsinit/internal/config"
)

func TestConfigSet(t *testing.T) {
	_, called := stubEnv(t, latest)

	out, err := execute(t, "--config-set", config.KeyGitBin+"=/opt/git/bin/git")
	if err != nil {
		t.Fatalf("--config-set error: %v", err)
	}
	if out != "Set git_bin = /opt/git/bin/git\n" {
		t.Errorf("set output = %q", out)
	}
	if *called {
		t.Error("--config-set should not bootstrap")
	}
}

func TestConfigGetDefault(t *testing.T) {
	out, err := execute(t, "--config-get", config.KeyResolver)
	if err != nil {
		t.Fatalf("--config-get error: %v", err)
	}
	if strings.TrimSpace(out) != config.ResolverNPM {
		t.Errorf("get output = %q, want %q", out, config.ResolverNPM)
	}
}

func TestConfigFlagErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--config-get", "mirror"}, "unknown config key"},
		{[]string{"--config-set", "mirror=x"}, "unknown config key"},
		{[]string{"--config-set", "git_bin"}, "expects key=value"},
		{[]string{"--config-get", "git_bin", "my-app"}, "do not take a project name"},
		{[]string{"--config-get", "git_bin", "--config-set", "git_bin=x"}, "none of the others"},
	}
	for _, tt := range tests {
		_, err := execute(t, tt.args...)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v: error = %v, want %q", tt.args, err, tt.want)
		}
	}
}
