// Package sample holds the greeting sample resource: a pure Greet function and
// the fixed Config value handed to the host that embeds it.
//
// Config is a plain value. Build it once with DefaultConfig at startup and pass
// it to whatever needs it; copies are independent, so nothing a consumer does
// to its copy is visible to anyone else.
package sample
