// Package web bundles the static assets so a deployment can run without
// the source tree present. The use_fs_assets config flag switches back to
// reading them from disk during development.
package web

import "embed"

//go:embed public
var Assets embed.FS
