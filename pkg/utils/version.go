// Package utils holds small one-off helpers that have no better home.
package utils

// Build metadata, overridden at release time via -ldflags.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
