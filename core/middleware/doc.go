// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation via X-API-Key or a Bearer token.
//   - rayid: assigns each request a RayID, stores it in Locals for
//     logger.WithRayID and echoes it in the X-Ray-ID response header.
//
// Both are registered globally in cmd/start.go; rayid runs first.
package middleware
