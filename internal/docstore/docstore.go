// Package docstore is a small client for document databases: named collections of
// semi-structured records keyed by opaque string ids. Firestore is the production backend;
// Memory backs tests and local development.
package docstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("docstore: document not found")

// ErrReadAfterWrite is returned when a transaction reads after it has written.
var ErrReadAfterWrite = errors.New("docstore: transactions must perform all reads before writes")

// Record is the raw field map of a document.
type Record map[string]interface{}

// Document is a stored record and its id.
type Document struct {
	ID   string
	Data Record
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter restricts a query to documents whose field at Path equals Value.
type Filter struct {
	Path  string
	Value interface{}
}

// Where builds an equality filter.
func Where(path string, value interface{}) Filter {
	return Filter{Path: path, Value: value}
}

// Query describes a collection listing. The zero Query lists every document in store order.
type Query struct {
	Filters   []Filter
	OrderBy   string
	Direction Direction
	// Limit caps the number of documents returned; 0 means no limit.
	Limit int
}

// Update sets the field at Path to Value. Value may be a field transform.
type Update struct {
	Path  string
	Value interface{}
}

type transform int

const (
	serverTimestamp transform = iota + 1
	deleteField
)

var (
	// ServerTimestamp is replaced by the store's commit time.
	ServerTimestamp interface{} = serverTimestamp
	// DeleteField removes the field from the document.
	DeleteField interface{} = deleteField
)

type arrayUnion struct {
	elems []interface{}
}

// ArrayUnion adds elems to an array field, skipping values that are already present.
func ArrayUnion(elems ...interface{}) interface{} {
	return arrayUnion{elems: elems}
}

// Tx is the view of the store inside a transaction. All reads must precede all writes.
type Tx interface {
	Get(collection, id string) (*Document, error)
	List(collection string, q Query) ([]*Document, error)
	Update(collection, id string, updates []Update) error
	Delete(collection, id string) error
}

// Unsubscribe stops a subscription.
type Unsubscribe func()

// Store is a document database client.
type Store interface {
	// Create adds a new document with a store-assigned id.
	Create(ctx context.Context, collection string, data Record) (string, error)
	// Set writes the document with the given id. With merge, only the given fields are replaced.
	Set(ctx context.Context, collection, id string, data Record, merge bool) error
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string, q Query) ([]*Document, error)
	// Update fails with ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, updates []Update) error
	// Delete succeeds when the document does not exist.
	Delete(ctx context.Context, collection, id string) error
	// RunTransaction runs fn atomically. Writes are applied only when fn returns nil.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Subscribe calls fn with the current document and again after every change. fn receives nil
	// while the document does not exist.
	Subscribe(ctx context.Context, collection, id string, fn func(*Document)) (Unsubscribe, error)
	Close() error
}

// Clock returns the current time. Stores use it to resolve ServerTimestamp.
type Clock func() time.Time
