// Package sizecache keeps the cumulative offset table behind variable-size
// lists: a prefix of measured (offset, size) entries that is extended lazily
// as indices are queried and truncated when sizes change.
package sizecache
