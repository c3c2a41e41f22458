package server

import "time"

// Every handler proxies the upstream platform API, so the write timeout
// sits above the upstream client timeout: a slow platform call surfaces as
// a 502 from the handler rather than a dropped connection.
const (
	readTimeout       = 5 * time.Second
	readHeaderTimeout = 2 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 120 * time.Second
)

// shutdownTimeout is a var so tests can shrink it.
var shutdownTimeout = 10 * time.Second
