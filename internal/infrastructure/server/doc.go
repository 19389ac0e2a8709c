// Package server wires storage, history, workspace and the HTTP API into a
// runnable server and renders the studio page.
package server
