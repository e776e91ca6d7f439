package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/invoicelens/invoicelens/internal/extraction"
)

// batchPause is the fixed delay between consecutive extraction calls. It is
// a deliberate throttle against remote rate limits, not adaptive backoff.
const batchPause = 1 * time.Second

// Sleeper pauses between extraction calls
type Sleeper interface {
	Sleep(d time.Duration)
}

// defaultSleeper sleeps with time.Sleep
type defaultSleeper struct{}

func (s *defaultSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}

// BatchFile is one uploaded document submitted as part of a batch
type BatchFile struct {
	Name        string
	Data        []byte
	ContentType string
}

// Service handles invoice operations
type Service struct {
	db      DB
	scanner extraction.Scanner
	sleeper Sleeper
}

// NewService creates a new Service with the default sleeper
func NewService(db DB, scanner extraction.Scanner) *Service {
	return &Service{
		db:      db,
		scanner: scanner,
		sleeper: &defaultSleeper{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner extraction.Scanner, sleeper Sleeper) *Service {
	return &Service{
		db:      db,
		scanner: scanner,
		sleeper: sleeper,
	}
}

// ProcessBatch extracts structured data from each file in order, strictly
// one at a time with a fixed pause between calls, reconciles each record,
// and commits the whole batch to the user's store in a single append. The
// first extraction failure aborts the batch and nothing is committed.
func (s *Service) ProcessBatch(ctx context.Context, user string, files []BatchFile) ([]Invoice, error) {
	results := make([]Invoice, 0, len(files))

	for i, file := range files {
		data, err := s.scanner.ScanInvoice(ctx, file.Data, file.ContentType)
		if err != nil {
			slog.Error("Failed to extract invoice",
				"filename", file.Name,
				"content_type", file.ContentType,
				"file_size", len(file.Data),
				"position", i+1,
				"batch_size", len(files),
				"error", err,
			)
			return nil, fmt.Errorf("extracting %s: %w", file.Name, err)
		}

		inv := Reconcile(Invoice{
			InvoiceNumber:  data.InvoiceNumber,
			SupplierNumber: data.SupplierNumber,
			InvoiceDate:    data.InvoiceDate,
			DueDate:        data.DueDate,
			InvoiceTotal:   data.InvoiceTotal,
			TotalFreight:   data.TotalFreight,
			LineItems:      convertLineItems(data.LineItems),
			FileName:       file.Name,
			FileDataURL:    extraction.FileDataURL(file.ContentType, file.Data),
		})
		results = append(results, inv)

		// Pause between calls to respect remote rate limits, but not after
		// the last file
		if i < len(files)-1 {
			s.sleeper.Sleep(batchPause)
		}
	}

	if err := s.db.AppendInvoices(user, results); err != nil {
		return nil, fmt.Errorf("saving invoices to database: %w", err)
	}

	return results, nil
}

// ListInvoices returns the user's invoices filtered by the query and date range
func (s *Service) ListInvoices(user string, query string, startDate string, endDate string) ([]Invoice, error) {
	invoices, err := s.db.LoadInvoices(user)
	if err != nil {
		return nil, fmt.Errorf("loading invoices: %w", err)
	}
	return FilterInvoices(invoices, query, startDate, endDate), nil
}

// Export returns the user's filtered invoices as a tab-separated text block
func (s *Service) Export(user string, query string, startDate string, endDate string) (string, error) {
	invoices, err := s.ListInvoices(user, query, startDate, endDate)
	if err != nil {
		return "", err
	}
	return ExportTSV(invoices), nil
}

// Login records the active username. No password is involved; the username
// only selects which invoice list is visible.
func (s *Service) Login(user string) error {
	if user == "" {
		return fmt.Errorf("username is required")
	}
	if err := s.db.SetLastUser(user); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Logout clears the active username. Persisted invoices are kept.
func (s *Service) Logout() error {
	if err := s.db.ClearLastUser(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// CurrentUser returns the last logged in username, or "" when none is set
func (s *Service) CurrentUser() (string, error) {
	user, err := s.db.LastUser()
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return user, nil
}

func convertLineItems(items []extraction.LineItem) []LineItem {
	converted := make([]LineItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, LineItem{
			Description: item.Description,
			Category:    item.Category,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}
	return converted
}
