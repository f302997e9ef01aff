// Package storage provides the key-value persistence layer behind every
// store in the app. Each store keeps one JSON document under one key and
// rewrites the whole document on every mutation, so the interface is
// deliberately small: get, put, delete.
package storage

// KV is the persistence interface injected into the stores. Get unmarshals
// the stored value into `into` and reports whether the key existed.
type KV interface {
	Get(key string, into interface{}) (bool, error)
	Put(key string, value interface{}) error
	Delete(key string) error
}
