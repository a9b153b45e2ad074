// Package store keeps an ordered collection of records addressable by a stable
// identifier.
//
// Store[K, R] owns the records; callers get copies out and hand replacements
// back in. An identifier→position index makes Find, Update and Mutate O(1);
// Remove re-indexes the records after the removed one and is O(n).
//
// Writes are serialized by the store's lock so the slice and the index always
// change together. Nothing here notifies anyone: callers decide when a change
// should be reflected in a snapshot.
package store
