// Package memory provides experience stores implementing core.Memory. Two
// backends are included: Ring, a bounded in-process circular buffer for
// tests and single-process training, and Badger, a durable BadgerDB-backed
// store that survives process restarts.
package memory
