// Package middleware provides the gin middleware stack for the studio API:
// CORS, per-IP and global rate limiting, request IDs and request logging.
package middleware
