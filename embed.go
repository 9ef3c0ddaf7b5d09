package pubsite

import "embed"

// EmbeddedAssets contains static assets shipped with pubsite: theme.js,
// which applies the stored theme on static pages.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
