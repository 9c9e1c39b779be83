package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// unsetAfterRestore registers env restoration via t.Setenv, then unsets
// the variable so the test observes an absent key.
func unsetAfterRestore(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "placeholder")
	os.Unsetenv(key)
}

// isolate points HOME and the working directory at empty temp dirs so
// no real config files leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.APIVersion != DefaultAPIVersion {
		t.Errorf("expected API version %q, got %q", DefaultAPIVersion, cfg.APIVersion)
	}
	if cfg.DelaySeconds != 1.0 {
		t.Errorf("expected delay 1.0, got %v", cfg.DelaySeconds)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("expected timeout 30, got %d", cfg.TimeoutSeconds)
	}
}

func TestMergeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("log_level: debug\ndelay_seconds: 2.5\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	if err := mergeFile(cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected 'debug', got %q", cfg.LogLevel)
	}
	if cfg.DelaySeconds != 2.5 {
		t.Errorf("expected 2.5, got %v", cfg.DelaySeconds)
	}
	// Unset keys keep their defaults.
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("expected timeout 30, got %d", cfg.TimeoutSeconds)
	}
}

func TestMergeFileNotExist(t *testing.T) {
	cfg := defaults()
	err := mergeFile(cfg, filepath.Join(t.TempDir(), "missing.yaml"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := isolate(t)
	unsetAfterRestore(t, EnvToken)
	unsetAfterRestore(t, EnvPhoneNumberID)
	unsetAfterRestore(t, EnvAPIVersion)

	dotenv := filepath.Join(dir, ".env")
	content := "# credentials\n" +
		"WHATSAPP_TOKEN=\"file-token\"\n" +
		"WHATSAPP_PHONE_NUMBER_ID='12345'\n"
	if err := os.WriteFile(dotenv, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dotenv)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "file-token" {
		t.Errorf("expected quotes stripped from token, got %q", cfg.Token)
	}
	if cfg.PhoneNumberID != "12345" {
		t.Errorf("expected phone number id '12345', got %q", cfg.PhoneNumberID)
	}
	if cfg.APIVersion != DefaultAPIVersion {
		t.Errorf("expected default API version, got %q", cfg.APIVersion)
	}
}

func TestLoadEnvWinsOverDotenv(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvToken, "env-token")
	unsetAfterRestore(t, EnvPhoneNumberID)
	unsetAfterRestore(t, EnvAPIVersion)

	dotenv := filepath.Join(dir, ".env")
	content := "WHATSAPP_TOKEN=file-token\nWHATSAPP_PHONE_NUMBER_ID=999888\n"
	if err := os.WriteFile(dotenv, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dotenv)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "env-token" {
		t.Errorf("pre-set environment must win over the dotenv file, got %q", cfg.Token)
	}
	if cfg.PhoneNumberID != "999888" {
		t.Errorf("unset keys should come from the file, got %q", cfg.PhoneNumberID)
	}
}

func TestLoadMissingDotenv(t *testing.T) {
	dir := isolate(t)
	unsetAfterRestore(t, EnvToken)
	unsetAfterRestore(t, EnvPhoneNumberID)
	unsetAfterRestore(t, EnvAPIVersion)

	cfg, err := Load(filepath.Join(dir, "no-such.env"))
	if err != nil {
		t.Fatalf("missing dotenv file must not be an error: %v", err)
	}
	if cfg.Token != "" {
		t.Errorf("expected empty token, got %q", cfg.Token)
	}
}

func TestLoadYAMLLayering(t *testing.T) {
	dir := isolate(t)
	unsetAfterRestore(t, EnvToken)
	unsetAfterRestore(t, EnvPhoneNumberID)
	unsetAfterRestore(t, EnvAPIVersion)

	userDir := filepath.Join(dir, ".reaper")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	userCfg := "api_version: v20.0\nlog_level: warn\n"
	if err := os.WriteFile(filepath.Join(userDir, "config.yaml"), []byte(userCfg), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIVersion != "v20.0" {
		t.Errorf("expected yaml api_version v20.0, got %q", cfg.APIVersion)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected yaml log_level warn, got %q", cfg.LogLevel)
	}

	// Environment wins over YAML for the API version.
	t.Setenv(EnvAPIVersion, "v22.0")
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIVersion != "v22.0" {
		t.Errorf("expected env api_version v22.0, got %q", cfg.APIVersion)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		dryRun  bool
		wantErr bool
	}{
		{"complete credentials", Config{Token: "t", PhoneNumberID: "p"}, false, false},
		{"missing token", Config{PhoneNumberID: "p"}, false, true},
		{"missing phone number id", Config{Token: "t"}, false, true},
		{"dry run skips the check", Config{}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.dryRun)
			if tt.wantErr && !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
