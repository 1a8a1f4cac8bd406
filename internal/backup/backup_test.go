package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStore(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCreateAndListJSON(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "dayhive.json", `{"version":1,"keys":{}}`)
	m := NewManager(store)

	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "dayhive-") {
		t.Errorf("backup name = %q, want dayhive- prefix", filepath.Base(path))
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("backup size = 0, want > 0")
	}
}

func TestCreateMissingStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := m.Create(); err == nil {
		t.Fatal("Create() on missing store should fail")
	}
}

func TestCreateCorruptJSONStore(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "dayhive.json", "{not json")
	m := NewManager(store)
	if _, err := m.Create(); err == nil {
		t.Fatal("Create() on corrupt store should fail")
	}
}

func TestRestoreReplacesStore(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "dayhive.json", `{"version":1,"keys":{"a":"1"}}`)
	m := NewManager(store)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(store, []byte(`{"version":1,"keys":{}}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	raw, err := os.ReadFile(store)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"a"`) {
		t.Errorf("restored store = %s, want original content", raw)
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "dayhive.json", `{"version":1,"keys":{}}`)
	bad := writeStore(t, dir, "bad.json", "{not json")
	m := NewManager(store)

	if err := m.Restore(bad); err == nil {
		t.Fatal("Restore() with corrupt backup should fail")
	}
}

func TestRotateKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "dayhive.json", `{"version":1,"keys":{}}`)
	m := NewManager(store)

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != MaxBackups {
		t.Errorf("got %d backups after rotation, want %d", len(backups), MaxBackups)
	}
}

func TestListEmptyWithoutBackupDir(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "dayhive.json", `{}`)
	m := NewManager(store)

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}
