package catalog

import (
	"errors"
	"net/http"
	"path"
	"strings"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

var errNilMux = errors.New("catalog: missing mux")

// MountPath joins basePath and the configured route into the pattern the
// proxy is served on.
func MountPath(basePath string, fns ...OptionFn) string {
	return joinRoute(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts the proxy under basePath and returns the pattern.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return New(fns...).RegisterRoutes(mux, basePath)
}

func joinRoute(basePath, route string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(route))
}
