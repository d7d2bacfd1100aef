// Package manager decouples the game rules from presentation. A Manager
// drives one session and publishes a synchronous stream of lifecycle, move
// and result events to whatever listeners the front-ends register: the
// console UI, the WebSocket hub, or a test recorder.
package manager
