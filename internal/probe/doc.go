// Package probe checks that the backing services named by a resolved
// settings profile are reachable: the default database and every Redis
// endpoint (channel layer hosts and the task queue broker).
//
// Probing is never part of building a profile. It is a deploy-time check run
// by the settings tool with -check.
package probe
