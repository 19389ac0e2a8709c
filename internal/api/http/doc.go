// Package http exposes the studio workspace as a JSON API over gin.
//
// Errors are returned as {"error": "..."} with the status chosen by
// StatusFor: 400 for user mistakes, 422 for blueprints or documents the
// codec rejects, 404 for searches and history lookups that find nothing.
package http
