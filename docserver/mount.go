package docserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vitalvas/apidoc/openapi"
)

// Pattern returns the ServeMux pattern serving ep. Paths ending in a slash
// match exactly instead of as a subtree.
func Pattern(ep openapi.Endpoint) string {
	path := ep.Path
	if strings.HasSuffix(path, "/") {
		path += "{$}"
	}
	return strings.ToUpper(ep.Method) + " " + path
}

// Mount registers the handler of every endpoint on mux at the path and
// method the generated document lists for it, so the served routes and the
// documented routes cannot drift apart. Endpoints without a handler are
// skipped. It returns the number of mounted routes; a conflicting or
// malformed pattern stops mounting with an error.
func Mount(mux *http.ServeMux, endpoints []openapi.Endpoint) (int, error) {
	mounted := 0

	for _, ep := range endpoints {
		if ep.Route == nil || ep.Route.Handler == nil {
			continue
		}

		if err := register(mux, Pattern(ep), ep.Route.Handler); err != nil {
			return mounted, fmt.Errorf("docserver: mount %s: %w", ep.OperationID, err)
		}
		mounted++
	}

	return mounted, nil
}

// register converts ServeMux registration panics into errors.
func register(mux *http.ServeMux, pattern string, h http.Handler) (err error) {
	defer func() {
		if rv := recover(); rv != nil {
			err = fmt.Errorf("%v", rv)
		}
	}()

	mux.Handle(pattern, h)
	return nil
}
