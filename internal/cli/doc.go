// Package cli implements the hjarta-settings command line tool.
package cli
