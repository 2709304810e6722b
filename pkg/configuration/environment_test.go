package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnv_LoadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "BOOKINGD_TEST_ENV_LOAD=ok\n")

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("BOOKINGD_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("BOOKINGD_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded from .env.local, got %q", got)
	}
}

func TestBookingOptions_Defaults(t *testing.T) {
	c := &Configuration{}
	if err := c.load(nil); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Booking.AdmissionCapacity != 5 {
		t.Errorf("expected default admission capacity 5, got %d", c.Booking.AdmissionCapacity)
	}
	if c.Booking.LockTimeout != 10*time.Second {
		t.Errorf("expected default lock timeout 10s, got %s", c.Booking.LockTimeout)
	}
	if c.Booking.TxMaxRetries != 3 {
		t.Errorf("expected default tx retry ceiling 3, got %d", c.Booking.TxMaxRetries)
	}
}

func TestBookingOptions_Validate(t *testing.T) {
	b := &BookingOptions{AdmissionCapacity: 0, LockTimeout: time.Second}
	if err := b.Validate(); err == nil {
		t.Error("expected error for zero admission capacity")
	}
	b = &BookingOptions{AdmissionCapacity: 5, LockTimeout: 0}
	if err := b.Validate(); err == nil {
		t.Error("expected error for zero lock timeout")
	}
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
