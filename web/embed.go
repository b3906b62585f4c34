// Package web содержит встроенную страницу сервиса.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

// StaticFS возвращает файлы страницы с корнем в static.
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
