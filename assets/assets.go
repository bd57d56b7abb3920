package assets

import "embed"

// Assets holds the stylesheets served under /assets.
//
//go:embed css/*
var Assets embed.FS
