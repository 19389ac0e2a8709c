// Package workspace is the application state behind the studio page.
//
// A Workspace owns the blueprint input, the editor buffer and its searcher,
// the encoded preview and the history. Every operation holds the workspace
// lock until it completes, so concurrent HTTP requests observe the same
// run-to-completion ordering a single browser tab would.
//
// Construction loads the persisted history before the editor exists.
package workspace
