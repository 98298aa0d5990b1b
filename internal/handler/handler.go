// Package handler implements the JSON API surface of the POS backend.
package handler

import (
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store/localstore"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store/pgstore"
)

var (
	remote *pgstore.Store
	local  *localstore.Store
)

// Init wires the data access layer into the handlers. The remote store backs
// all page operations; the local store is read only by the migration trigger.
func Init(r *pgstore.Store, l *localstore.Store) {
	remote = r
	local = l
}
