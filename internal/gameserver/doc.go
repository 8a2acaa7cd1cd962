// Package gameserver runs the game: a single goroutine owns the world and
// drives it one pulse at a time. Each pulse admits new connections, reads
// input, runs at most one command per connection, flushes output and fires
// the heartbeats for zones, mobiles, game hours and autosave.
//
// Transports hand connections in through Accept; the admin API and the
// channel bridge reach the world only through Call and Submit.
package gameserver
