// Package api exposes the string service over HTTP using gin.
//
// # Routes
//
//	POST   /strings                               create
//	GET    /strings                               list with structured filters
//	GET    /strings/filter-by-natural-language    list with a free-text query
//	GET    /strings/{value}                       fetch by value
//	DELETE /strings/{value}                       delete by value
//	GET    /health                                liveness
//	GET    /metrics                               Prometheus exposition (optional)
//
// {value} is the URL-decoded remainder of the path and may contain slashes.
// The natural-language route shadows a stored value spelled
// "filter-by-natural-language".
//
// # Errors
//
// Every error response is JSON {"message": "..."}. Status codes follow the
// engine error code; see statusFor.
//
// # Middleware
//
// In order: panic recovery, request id, access log, metrics (optional),
// rate limit (optional).
package api
