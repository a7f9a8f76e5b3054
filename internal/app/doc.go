// Package app provides application initialization and lifecycle management
// for the reporting server. It wires configuration, logging, observability,
// the data loader, services, HTTP transport and the WebSocket hub together
// at startup and handles graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and observability
//	3. Build the data loader and weather client
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure and start the HTTP server
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM to ensure active requests are
// completed, WebSocket connections are closed cleanly and final metrics
// are flushed. Initialization errors are returned to the caller; the app
// never calls os.Exit() directly.
package app
