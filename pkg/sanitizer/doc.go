// Package sanitizer normalizes request input before validation and storage.
//
// Every function is idempotent. Object ids are trimmed and lowercased so that ids
// stored as foreign keys compare equal no matter how the client spelled them.
package sanitizer
