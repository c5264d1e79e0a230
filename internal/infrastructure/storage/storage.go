// Package storage archives generated documents in object storage.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrObjectNotFound is returned when a key has no stored object
var ErrObjectNotFound = errors.New("object not found")

// DocumentStore keeps binary documents under string keys
type DocumentStore interface {
	// Put stores data under key, replacing any previous object
	Put(ctx context.Context, key, contentType string, data []byte) error

	// Get returns the object stored under key or ErrObjectNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether key holds an object
	Exists(ctx context.Context, key string) (bool, error)

	// PresignGet returns a time-limited download URL for key
	PresignGet(ctx context.Context, key string) (string, time.Time, error)
}

// InvoicePDFKey is the object key of an invoice's archived PDF
func InvoicePDFKey(invoiceNumber string) string {
	return "invoices/" + invoiceNumber + ".pdf"
}
