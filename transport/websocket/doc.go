// Package websocket pushes game events to connected clients. Each client
// subscribes to one session; the hub fans out every event together with the
// state snapshot produced after it.
package websocket
