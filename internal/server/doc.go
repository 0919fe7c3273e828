// Package server exposes the analyzer over HTTP.
//
// Routes:
//
//	GET  /             liveness probe, returns a static string
//	POST /api/analyze  analyzes {"payload": {...}, "options": {...}}
//
// Every response to /api/analyze is JSON. Failures use the shape
// {"success": false, "error": "<message>"}: 400 for a missing payload or an
// undecodable body, 413 for an oversized body, and 500 for internal faults.
package server
