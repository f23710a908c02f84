package platform

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestInjectPlatformTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	info := &Info{
		OS:         OSLinux,
		Arch:       ArchX86_64,
		ArchRaw:    "amd64",
		KernelArch: "x86_64",
		Platform:   "ubuntu",
		Family:     FamilyDebian,
		Version:    "22.04",
	}

	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	tests := []struct {
		name string
		code string
		want lua.LValue
	}{
		{"os", `return platform.os`, lua.LString("linux")},
		{"arch", `return platform.arch`, lua.LString("x86_64")},
		{"arch_raw", `return platform.arch_raw`, lua.LString("amd64")},
		{"kernel_arch", `return platform.kernel_arch`, lua.LString("x86_64")},
		{"identifier", `return platform.identifier`, lua.LString("linux64")},
		{"is_linux", `return platform.is_linux`, lua.LTrue},
		{"is_macos", `return platform.is_macos`, lua.LFalse},
		{"is_windows", `return platform.is_windows`, lua.LFalse},
		{"is_apple_silicon", `return platform.is_apple_silicon`, lua.LFalse},
		{"distro.id", `return platform.distro.id`, lua.LString("ubuntu")},
		{"distro.family", `return platform.distro.family`, lua.LString("debian")},
		{"when_true", `return platform.when(true, "x")`, lua.LString("x")},
		{"when_false", `return platform.when(false, "x")`, lua.LNil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := L.DoString(tt.code); err != nil {
				t.Fatalf("failed to execute code: %v", err)
			}
			got := L.Get(-1)
			L.Pop(1)

			if got.Type() != tt.want.Type() {
				t.Errorf("type mismatch: got %v, want %v", got.Type(), tt.want.Type())
				return
			}
			if got.String() != tt.want.String() {
				t.Errorf("value mismatch: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTable_Unsupported(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: OSLinux, Arch: ArchAArch64}); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	if err := L.DoString(`return platform.identifier, platform.distro`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if id := L.Get(-2); id != lua.LNil {
		t.Errorf("identifier = %v, want nil", id)
	}
	if distro := L.Get(-1); distro != lua.LNil {
		t.Errorf("distro = %v, want nil", distro)
	}
}

func TestInjectPlatformTable_ReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: OSMacOS, Arch: ArchAArch64}); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	for _, code := range []string{`platform.os = "windows"`, `platform.new_field = 1`, `setmetatable(platform, {})`} {
		err := L.DoString(code)
		if err == nil {
			t.Errorf("%s: expected error", code)
			continue
		}
		if strings.Contains(code, "setmetatable") {
			continue
		}
		if !strings.Contains(err.Error(), "read-only") {
			t.Errorf("%s: error = %v, want read-only error", code, err)
		}
	}
}
