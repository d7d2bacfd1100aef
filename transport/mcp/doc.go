// Package mcp exposes the game as MCP tools. The client is a thin proxy:
// every tool call is translated into a REST request against the API server,
// so game state lives in one place regardless of transport.
package mcp
