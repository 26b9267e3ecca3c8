// Package network provides connectivity tools: DNS lookups, single-target
// TCP port checks, URL parsing, local interface listing and sequential
// HTTP latency measurement.
//
// port_check dials exactly one host:port per call and http_ping issues its
// requests one after another. Neither is a scanner and neither runs
// anything concurrently; range sweeps are out of scope by design.
package network
