// Package api serves the REST surface: session lifecycle, game state reads
// and the three game operations (move, next round, end game). Mutating
// handlers also fan the resulting events out to the WebSocket hub.
package api
