package kv

import (
	"path/filepath"
	"testing"

	"github.com/eringen/pubsite/theme"
)

func openTestStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	stores := make(map[string]Store)
	for _, driver := range []string{DriverSQLite, DriverBolt} {
		s, err := Open(driver, filepath.Join(dir, driver, "settings.db"))
		if err != nil {
			t.Fatalf("Open(%s): %v", driver, err)
		}
		t.Cleanup(func() { s.Close() })
		stores[driver] = s
	}
	return stores
}

func TestGetMissingKey(t *testing.T) {
	for driver, s := range openTestStores(t) {
		v, err := s.Get("nope")
		if err != nil {
			t.Fatalf("%s Get: %v", driver, err)
		}
		if v != "" {
			t.Errorf("%s Get(missing) = %q", driver, v)
		}
	}
}

func TestSetAndOverwrite(t *testing.T) {
	for driver, s := range openTestStores(t) {
		if err := s.Set("theme", "light"); err != nil {
			t.Fatalf("%s Set: %v", driver, err)
		}
		if err := s.Set("theme", "dark"); err != nil {
			t.Fatalf("%s Set: %v", driver, err)
		}
		v, err := s.Get("theme")
		if err != nil {
			t.Fatalf("%s Get: %v", driver, err)
		}
		if v != "dark" {
			t.Errorf("%s Get = %q, want dark", driver, v)
		}
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	for _, driver := range []string{DriverSQLite, DriverBolt} {
		path := filepath.Join(dir, driver+".db")
		s, err := Open(driver, path)
		if err != nil {
			t.Fatalf("Open(%s): %v", driver, err)
		}
		if err := s.Set("theme", "light"); err != nil {
			t.Fatal(err)
		}
		s.Close()

		s, err = Open(driver, path)
		if err != nil {
			t.Fatalf("reopen %s: %v", driver, err)
		}
		v, _ := s.Get("theme")
		s.Close()
		if v != "light" {
			t.Errorf("%s after reopen = %q", driver, v)
		}
	}
}

func TestStoresBackThemeState(t *testing.T) {
	for driver, s := range openTestStores(t) {
		st := theme.NewState(s)
		if got, _ := st.Load(); got != theme.Dark {
			t.Fatalf("%s Load = %q", driver, got)
		}
		if got, err := st.Toggle(); err != nil || got != theme.Light {
			t.Fatalf("%s Toggle = %q, %v", driver, got, err)
		}
		if got, _ := theme.NewState(s).Load(); got != theme.Light {
			t.Fatalf("%s persisted = %q", driver, got)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("redis", filepath.Join(t.TempDir(), "x")); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
