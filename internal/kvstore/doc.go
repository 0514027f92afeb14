// Package kvstore provides the string key-value persistence used for offsets
// and preferences.
//
// Every backend implements Store. Memory keeps values in process, File keeps
// a single JSON object on disk guarded by an advisory lock, SQL stores rows
// in SQLite or a remote libSQL database, and Redis keeps keys under an
// optional prefix. Open selects a backend from configuration.
package kvstore
