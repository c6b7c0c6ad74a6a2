// Package ini provides the settings file section reader for the config package.
//
// This package uses gopkg.in/ini.v1 to read one section of an INI-style
// settings file. Values are returned raw, quotes and all, so the value codec
// in config/parser/yaml can decode them:
//
//	[dev]
//	extends = "base.cfg"
//	DEBUG = true
//	LOGGING.loggers.(pkg.module).level = "DEBUG"
//
// Entries come back in file order. Keys from the DEFAULT section that the
// section does not override follow the section's own keys. A section that
// is not present yields only the DEFAULT keys.
package ini
