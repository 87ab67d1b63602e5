// Package server exposes the coil calculator over HTTP: the server-rendered
// form and results pages plus a small JSON API that proxies the calculation
// service.
package server
