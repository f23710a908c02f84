package platform

import (
	"errors"
	"testing"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		os      string
		arch    string
		want    string
		wantErr bool
	}{
		{OSWindows, ArchX86_64, "win64", false},
		{OSWindows, ArchX86, "win32", false},
		{OSMacOS, ArchX86_64, "mac-x64", false},
		{OSMacOS, ArchAArch64, "mac-arm64", false},
		{OSLinux, ArchX86_64, "linux64", false},
		{OSLinux, ArchAArch64, "", true},
		{OSLinux, ArchX86, "", true},
		{OSWindows, ArchAArch64, "", true},
		{OSMacOS, ArchX86, "", true},
		{"freebsd", ArchX86_64, "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch, func(t *testing.T) {
			got, err := Identifier(tt.os, tt.arch)
			if tt.wantErr {
				if !errors.Is(err, errdefs.ErrUnsupportedPlatform) {
					t.Fatalf("Identifier() error = %v, want UnsupportedPlatform", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Identifier() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Identifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentifierErrorNamesPair(t *testing.T) {
	_, err := Identifier(OSLinux, "riscv64")

	var e *errdefs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errdefs.Error, got %T", err)
	}
	if e.Platform != "linux-riscv64" {
		t.Errorf("Platform = %q, want %q", e.Platform, "linux-riscv64")
	}
}

func TestInfoIdentifierAndExecutableName(t *testing.T) {
	win := &Info{OS: OSWindows, Arch: ArchX86_64}
	if id, err := win.Identifier(); err != nil || id != "win64" {
		t.Errorf("Identifier() = %q, %v", id, err)
	}
	if got := win.ExecutableName("chromedriver"); got != "chromedriver.exe" {
		t.Errorf("ExecutableName() = %q", got)
	}

	linux := &Info{OS: OSLinux, Arch: ArchX86_64}
	if got := linux.ExecutableName("chromedriver"); got != "chromedriver" {
		t.Errorf("ExecutableName() = %q", got)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		wantID  string
		wantErr bool
	}{
		{"linux/x86_64", "linux64", false},
		{"darwin/arm64", "mac-arm64", false},
		{"macos/amd64", "mac-x64", false},
		{"windows/386", "win32", false},
		{" Windows / AMD64 ", "win64", false},
		{"linux", "", true},
		{"/x86_64", "", true},
		{"linux/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			info, err := ParseTarget(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTarget(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			id, err := info.Identifier()
			if err != nil {
				t.Fatalf("Identifier() error = %v", err)
			}
			if id != tt.wantID {
				t.Errorf("Identifier() = %q, want %q", id, tt.wantID)
			}
		})
	}
}
