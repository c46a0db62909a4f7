package web

import "embed"

// StaticFS embeds the browser client (entry document, script, styles).
//
//go:embed static/*
var StaticFS embed.FS
