// Package http implements the HTTP handlers for the reporting API.
// Handlers stay thin: they parse the request, call a service and render
// the response, with errors surfaced as RFC 7807 problem documents.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Loader
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Every payload-bearing response wraps its data in a small envelope:
//
//	{"status": "success", "data": ..., "count": N}
package http
