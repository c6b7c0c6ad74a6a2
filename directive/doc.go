// Package directive implements the post-merge passes driven by reserved
// top-level settings.
//
// IMPORT_FROM_STRING lists setting paths whose string values are names to
// be swapped for the objects a resolve.Resolver returns. EXTRA maps setting
// paths to lists that are appended to the list already stored there.
//
// Both passes use traverse in last-only mode and leave the directive keys
// in the tree.
package directive
