// Command server runs the Blueprint Studio web interface and JSON API.
//
// Configuration comes from the environment (PORT, HOST, STORAGE_BACKEND,
// STORAGE_PATH, HISTORY_CAPACITY, ...) and may be overridden by flags.
package main
