package invoice

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"
)

const (
	invoicesBucketName = "invoices"
	sessionBucketName  = "session"
	lastUserKey        = "last-user"
)

// DB defines the interface for database operations. Invoice lists are keyed
// per username; the session bucket holds the last logged in username.
type DB interface {
	// LoadInvoices returns the persisted invoices for a user in arrival
	// order. A missing or unreadable list is an empty list, not an error.
	LoadInvoices(user string) ([]Invoice, error)

	// AppendInvoices appends records to a user's persisted list. Preview
	// payloads are stripped before persisting.
	AppendInvoices(user string, records []Invoice) error

	// LastUser returns the last logged in username, or "" when none is set
	LastUser() (string, error)

	// SetLastUser records the active username
	SetLastUser(user string) error

	// ClearLastUser drops the active username without erasing invoices
	ClearLastUser() error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(invoicesBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(sessionBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// LoadInvoices returns the persisted invoices for a user
func (b *BoltDB) LoadInvoices(user string) ([]Invoice, error) {
	var invoices []Invoice
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoicesBucketName))
		invoices = decodeInvoiceList(user, bucket.Get([]byte(user)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// AppendInvoices appends records to a user's persisted list
func (b *BoltDB) AppendInvoices(user string, records []Invoice) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(invoicesBucketName))

		invoices := decodeInvoiceList(user, bucket.Get([]byte(user)))
		for _, record := range records {
			invoices = append(invoices, record.withoutPreview())
		}

		data, err := json.Marshal(invoices)
		if err != nil {
			return fmt.Errorf("marshaling invoices: %w", err)
		}
		return bucket.Put([]byte(user), data)
	})
}

// decodeInvoiceList unmarshals a persisted invoice list. Corrupt data is
// logged and treated as an empty list so one bad record can never lock a
// user out of the application.
func decodeInvoiceList(user string, data []byte) []Invoice {
	invoices := make([]Invoice, 0)
	if data == nil {
		return invoices
	}
	if err := json.Unmarshal(data, &invoices); err != nil {
		slog.Warn("Discarding unreadable invoice data", "user", user, "error", err)
		return make([]Invoice, 0)
	}
	return invoices
}

// LastUser returns the last logged in username
func (b *BoltDB) LastUser() (string, error) {
	var user string
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucketName))
		user = string(bucket.Get([]byte(lastUserKey)))
		return nil
	})
	if err != nil {
		return "", err
	}
	return user, nil
}

// SetLastUser records the active username
func (b *BoltDB) SetLastUser(user string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucketName))
		return bucket.Put([]byte(lastUserKey), []byte(user))
	})
}

// ClearLastUser drops the active username
func (b *BoltDB) ClearLastUser() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucketName))
		return bucket.Delete([]byte(lastUserKey))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
