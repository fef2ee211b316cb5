// Package mongo wires the official MongoDB driver into the service: an
// environment-driven Config, a connect helper with startup retries, and a
// health probe for readiness endpoints. The audit layer uses it as one of
// its storage backends.
package mongo
