package web

import "embed"

// StaticFS embeds the payroll app (html/js/css).
//
//go:embed static
var StaticFS embed.FS
