// Package repository handles all interactions with the store.
//
// It wraps the in-memory collections with typed find/list/insert/update/remove
// methods, abstracting storage details away from the service layer.
package repository
