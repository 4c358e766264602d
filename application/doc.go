/*
Package application is a library for building the reserve service's
executables.

It provides the pieces every executable shares: a structured logger, TOML
configuration loading and saving, and a base HTTP server with url-scheme
addresses (tcp, with optional TLS, or unix sockets) and graceful
shutdown.
*/
package application
