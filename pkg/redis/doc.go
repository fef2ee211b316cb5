// Package redis provides connection bootstrapping for go-redis with startup
// retries and a health probe. The user store cache layers on the client it
// returns.
package redis
