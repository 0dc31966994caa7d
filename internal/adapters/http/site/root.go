// Package site serves the embedded calculator and planner front-ends.
// The two pages are static HTML talking to the JSON API; they share no
// state and hand race times to each other only through the URL query
// string, so the planner works the same when the calculator is hosted
// elsewhere.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Register attaches the embedded front-end routes to mux. The
// calculator and planner get stable paths of their own; everything else
// under / falls through to the static file server.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/calculator", servePage("calculator.html"))
	mux.HandleFunc("/planner", servePage("planner.html"))
	mux.Handle("/", http.FileServer(FS()))
}

// servePage serves one embedded page regardless of the query string,
// which is how the planner receives its hand-off parameters.
func servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, pagesFS, name)
	}
}
