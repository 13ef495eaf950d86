// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key). Disabled when no key is configured.
//   - rayid: Tags every request with a ray id, stored in the context locals
//     and echoed in the X-Ray-ID response header for tracing.
//
// RayID is registered first so every log line of a request can carry it.
package middleware
