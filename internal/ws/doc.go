// Package ws implements the WebSocket hub that streams report snapshots to
// connected dashboard clients. Clients receive the current snapshot on
// connect and a fresh one on every broadcast tick; slow clients whose send
// buffers fill are disconnected rather than stalling the hub.
package ws
