// Package server provides the HTTP server for the portal API.
//
// The Server struct holds the router, the database handle, the store
// implementations and the external collaborators (library storage, AI model,
// mail notifier, Google Drive). Routes are registered by the endpoints
// subpackage:
//
//	srv := server.NewServer(cfg, log, db, sessions, "0.0.0.0", "3000")
//	srv.UsersStore = gorm.NewUsersStore(db)
//	// ...
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal("server stopped", "error", err)
//	}
//
// Handler() wraps the router with request ids, panic recovery, CORS and the
// gorilla access log. Protected and AdminOnly attach session checks to
// individual routes.
package server
