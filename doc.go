// Package settings loads local settings files into a host's base settings
// and exposes the result to Uber Fx applications.
//
// Load is the single-call entry point. NewModule provides the merged
// settings, a config.Source and a config.Binder to an Fx graph so typed
// configuration can be bound with config.Provider. NewApp wraps an fx.App
// with the module already installed.
package settings
