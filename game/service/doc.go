// Package service exposes the game to the transports. It keeps a registry of
// active sessions keyed by generated IDs and maps each manager operation to
// a request/response shape the REST API, MCP tools and WebSocket hub can
// serialize.
package service
