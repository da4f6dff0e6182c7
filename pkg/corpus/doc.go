// Package corpus reads training text and turns it into token sequences for
// package ngram. It also provides a small SQLite-backed Store for keeping named
// corpus documents between runs.
package corpus
