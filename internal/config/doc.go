// Package config provides sandboxed Lua configuration parsing, generation
// and loading for wdm.
//
// # Overview
//
// Configuration is optional. When present it is a Lua file that assigns a
// global "wdm" table:
//
//	wdm = {
//	  install_dir = "/opt/drivers",
//	  manifest_url = "https://example.test/known-good-versions-with-downloads.json",
//	  user_agent = "wdm/1.0",
//	  extract_workers = 2,
//	  browsers = {
//	    chrome = { path = platform.is_macos and "/Applications/Chromium.app/Contents/MacOS/Chromium" or nil },
//	  },
//	}
//
// Browser entries may also be plain strings (chrome = "/usr/bin/chromium").
// An entry whose path evaluates to nil means "search as usual".
//
// # Sandbox
//
// Config code runs in a gopher-lua VM with only the base, table, string
// and math libraries opened. os, io, package and debug are never loaded,
// and the base functions that load code or bypass metatables (dofile,
// loadfile, load, loadstring, require, rawset, setmetatable, ...) are
// removed. The platform table from the platform package is read-only.
// Evaluation honours the context passed to ParseString and ParseFile.
//
// # Loading
//
// Load layers values in this order, highest first:
//
//  1. command-line overrides
//  2. WDM_INSTALL_DIR and WDM_MANIFEST_URL
//  3. the config file (explicit path, $WDM_CONFIG, or <config dir>/wdm/wdm.lua)
//  4. defaults (install dir <cache dir>/wdm/drivers)
//
// A missing file is only an error when its path was given explicitly.
//
// # Error Types
//
//	type ParseError struct {
//	    Message string  // User-friendly message
//	    Detail  string  // Raw Lua or validation error
//	}
//
//	type ValidationError struct {
//	    Field   string  // Field that failed validation
//	    Message string  // Error description
//	}
//
// Parser and Generator hold no mutable state and are safe for concurrent use.
package config
