package folio

import "embed"

// EmbeddedAssets contains static assets shipped with folio. site.css is
// served under /public/ unless the static dir provides its own.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
