// Package config resolves the carbondoomsday settings profile for one
// deployment environment (Production, Staging or Development).
//
// A profile is assembled from plain partial [Settings] records applied in a
// fixed order (later records override earlier non-zero fields):
//  1. the shared base layer
//  2. the realtime channel overlay (in-memory or Redis backed)
//  3. the webpack overlay (development or production bundles)
//  4. the environment body (allowed hosts, development toggles)
//
// Boolean settings declared by the profile are then overridden from
// DJANGO_* environment variables, and the result is validated. Missing
// secrets and malformed URLs abort the build.
//
// The main entry points are [GetSettings] to build a profile and [Setup] /
// [Active] to hold the single profile of the running process.
package config
