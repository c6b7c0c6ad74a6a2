// Package loader merges a base settings tree with overrides read from an
// INI-style settings file.
//
// A settings file is named by a spec of the form "path[#section]"; the
// section defaults to DefaultSection. Each entry of the section is a path
// expression and a raw value:
//
//	[dev]
//	extends = "base.cfg"
//	DEBUG = true
//	DATABASES.default.HOST = "db.local"
//	LOGGING.loggers.(app.models).level = "DEBUG"
//	TEMPLATES.0.OPTIONS.context_processors = ["app.context.site"]
//
// The reserved entry "extends" names one file or a list of files whose
// entries are merged first; later files win over earlier ones and the
// file's own entries win over all of them. Extended files are resolved
// relative to the file that names them and inherit its section unless they
// carry their own "#section" suffix.
//
// Load seeds the result with the uppercase keys of the base tree, applies
// each entry through traverse with create-missing enabled, and then runs
// interpolation, IMPORT_FROM_STRING and EXTRA in that order. Every written
// key moves to the end of its container, so later entries iterate after
// earlier ones. Deferred placeholders in the base tree that receive a value
// are resolved and reported in Result.Registry.
package loader
