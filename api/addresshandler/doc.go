// Package addresshandler serves the address registry over HTTP and provides
// the matching client functions.
//
// Server-side usage:
//
//	reg, _ := registry.DefaultRegistry()
//	handler := addresshandler.NewHandler(reg, metricsSrv, logger)
//	router := chi.NewRouter()
//	handler.RegisterRoutes(router)
//
// Client-side usage:
//
//	rec, err := addresshandler.Lookup("http://127.0.0.1:8080", interfaces.GroundWeb, interfaces.StableCoin)
//	if errors.Is(err, interfaces.ErrUnknownName) {
//		// name is not deployed in that environment
//	}
//
// The client maps 404 answers back onto interfaces.ErrUnknownName and
// interfaces.ErrUnknownEnvironment so callers handle remote and local
// lookups the same way.
package addresshandler
