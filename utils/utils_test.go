package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLongToBytes(t *testing.T) {
	got := LongToBytes(1)
	expect := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, expect) {
		t.Error("Wrong little endian encoding",
			"expected", expect,
			"got", got)
	}
}

func TestUInt32ToBytes(t *testing.T) {
	got := UInt32ToBytes(0x01020304)
	expect := []byte{1, 2, 3, 4}
	if !bytes.Equal(got, expect) {
		t.Error("Wrong big endian encoding",
			"expected", expect,
			"got", got)
	}
}

func TestWriteFileRefusesOverwrite(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out")
	if err := WriteFile(file, []byte("first"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(file, []byte("second"), 0600); err == nil {
		t.Error("Overwriting an existing file should fail")
	}
	buf, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "first" {
		t.Error("Original file content was clobbered")
	}
}

func TestResolvePath(t *testing.T) {
	got := ResolvePath("sign.priv", "/etc/reserve/config.toml")
	if got != "/etc/reserve/sign.priv" {
		t.Error("Relative path not resolved against config dir, got", got)
	}
	abs := ResolvePath("/keys/sign.priv", "/etc/reserve/config.toml")
	if abs != "/keys/sign.priv" {
		t.Error("Absolute path should pass through, got", abs)
	}
}
