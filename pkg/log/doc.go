/*
Package log provides structured logging for dnset using zerolog.

A single global zerolog.Logger is initialized once at startup via Init and
shared by every package. Console output (the default) is meant for operators
running `dnset sync` by hand; JSON output is for the daemon under systemd or
a log shipper.

The debug level doubles as the verbose trace mode: at debug, every API call
the gateway makes and every DNS answer the resolver parses is logged. At the
default info level only per-set outcomes and failures appear.

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	logger := log.WithIPSet("cluster", "blocklist")
	logger.Info().Int("addresses", 3).Msg("ipset updated")

Context helpers:

  - WithComponent: tags logs with the emitting subsystem ("walker", "pve", ...)
  - WithRunID: binds the per-pass run ID so one pass can be grepped out
  - WithScope / WithIPSet: identify the firewall object being worked on
*/
package log
