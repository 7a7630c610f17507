// Package feed streams newly created job postings to connected WebSocket
// clients.
//
// The flow is one-directional: the jobs handler notifies the Hub after a
// posting is durably stored, and the Hub fans the event out to every
// connected client. Clients send nothing except close frames; the read loop
// exists only to detect disconnects.
package feed
