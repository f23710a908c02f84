package config

// Lua schema field names and globals
const (
	luaGlobalWdm          = "wdm"
	luaFieldInstallDir    = "install_dir"
	luaFieldManifestURL   = "manifest_url"
	luaFieldUserAgent     = "user_agent"
	luaFieldExtractWorker = "extract_workers"
	luaFieldBrowsers      = "browsers"
	luaFieldPath          = "path"
)

// Limits applied to config files
const (
	// MaxConfigSize is the largest config file accepted, in bytes
	MaxConfigSize = 1 << 20
	// MaxExtractWorkers bounds extract_workers
	MaxExtractWorkers = 256
	// MaxStringLength bounds free-form string values
	MaxStringLength = 256
	// luaCallStackSize bounds recursion in config code
	luaCallStackSize = 256
)

// Environment variables read by Load
const (
	EnvConfig      = "WDM_CONFIG"
	EnvInstallDir  = "WDM_INSTALL_DIR"
	EnvManifestURL = "WDM_MANIFEST_URL"
)
