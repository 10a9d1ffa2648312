package auth

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/homegrid/internal/app"
	"nathanbeddoewebdev/homegrid/internal/config"
	"nathanbeddoewebdev/homegrid/internal/database"
	"nathanbeddoewebdev/homegrid/internal/servicedir"
	"nathanbeddoewebdev/homegrid/internal/services/auth"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/zalando/go-keyring"
)

func setupTestEnv(t *testing.T) {
	t.Helper()
	keyring.MockInit()
	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	database.SetPath(filepath.Join(dir, "homegrid.db"))
	t.Cleanup(config.ResetPath)
	t.Cleanup(database.ResetPath)
}

func execAuth(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func TestLogin_WithTokenFlag(t *testing.T) {
	setupTestEnv(t)

	stdout, err := execAuth(t, "login", "PVE", "--token", "  s3cret  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Saved token for service pve") {
		t.Errorf("unexpected output: %s", stdout)
	}

	token, err := auth.DefaultStore().GetToken("pve")
	if err != nil {
		t.Fatalf("GetToken: %v", err)
	}
	if token != "s3cret" {
		t.Errorf("token = %q, want trimmed value", token)
	}
}

func TestLogin_RequiresTokenOffTerminal(t *testing.T) {
	setupTestEnv(t)

	if _, err := execAuth(t, "login", "pve"); err == nil {
		t.Fatal("expected error without --token and no terminal")
	}
}

func TestLogin_InvalidServiceID(t *testing.T) {
	setupTestEnv(t)

	if _, err := execAuth(t, "login", "bad id", "--token", "x"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLogout(t *testing.T) {
	setupTestEnv(t)
	if err := auth.DefaultStore().SetToken("pve", "s3cret"); err != nil {
		t.Fatal(err)
	}

	stdout, err := execAuth(t, "logout", "pve")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Removed token") {
		t.Errorf("unexpected output: %s", stdout)
	}

	stdout, err = execAuth(t, "logout", "pve")
	if err != nil {
		t.Fatalf("second logout should not fail: %v", err)
	}
	if !strings.Contains(stdout, "No token stored") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestStatus(t *testing.T) {
	setupTestEnv(t)
	env, err := app.Open()
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range []servicedir.Record{
		{ID: "pve", Name: "Proxmox", Kind: domain.KindHypervisor, Home: "cabin"},
		{ID: "dns", Name: "AdGuard", Kind: domain.KindDNSFilter, Home: "cabin"},
	} {
		if err := env.Services.Add(&rec); err != nil {
			t.Fatal(err)
		}
	}
	env.Close()
	if err := auth.DefaultStore().SetToken("pve", "s3cret"); err != nil {
		t.Fatal(err)
	}

	stdout, err := execAuth(t, "status", "--home", "cabin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "pve: token stored\ndns: no token\n"
	if stdout != want {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, want)
	}
}
