// Package module declares the contract api modules implement and the
// reflection helpers used to pull typed ports off one another
package module

import (
	phttp "deyimci/internal/platform/net/http"
)

// Module is what the api shell mounts. It lives in its own package so a
// module can export a ports struct without an import knot back to modkit
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
