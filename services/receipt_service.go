package services

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"hotel-booking/models"
)

// ReceiptStore is the content store the generator writes into: named text
// artifacts keyed by order number, retrievable for download and removable
// on order deletion.
type ReceiptStore interface {
	Write(key string, content []byte) (string, error)
	Remove(ref string) error
	Path(ref string) string
}

// FileReceiptStore keeps receipts as files under a root directory.
type FileReceiptStore struct {
	Root string
}

func NewFileReceiptStore(root string) *FileReceiptStore {
	return &FileReceiptStore{Root: root}
}

func (f *FileReceiptStore) Write(key string, content []byte) (string, error) {
	ref := filepath.Join("receipts", key)
	full := filepath.Join(f.Root, ref)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipt dir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return ref, nil
}

// Remove deletes an artifact. A missing file is a silent success since the
// receipt is derived data.
func (f *FileReceiptStore) Remove(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(f.Root, ref)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (f *FileReceiptStore) Path(ref string) string {
	return filepath.Join(f.Root, ref)
}

// ReceiptService derives the human-readable text receipt from a persisted
// order. Generation always rewrites the full artifact, so regenerating for
// an unchanged order is idempotent.
type ReceiptService struct {
	Store ReceiptStore
}

func NewReceiptService(store ReceiptStore) *ReceiptService {
	return &ReceiptService{Store: store}
}

// Render builds the receipt body as a pure function of the order's state.
// The order must be loaded with Creator, Room.RoomType.Conveniences, Tariff
// and Conveniences.
func (s *ReceiptService) Render(order *models.Order) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Booking receipt #%s\n", order.OrderNumber)
	created := "—"
	if !order.CreatedAt.IsZero() {
		created = order.CreatedAt.Format("2006-01-02 15:04")
	}
	fmt.Fprintf(&b, "Created: %s\n\n", created)

	name := order.Creator.FullName()
	if name == "" {
		name = "Unknown customer"
	}
	email := order.Creator.Email
	if email == "" {
		email = "—"
	}
	fmt.Fprintf(&b, "Customer: %s (%s)\n", name, email)
	fmt.Fprintf(&b, "Phone: %s\n\n", order.Creator.PhoneNumber)

	fmt.Fprintf(&b, "Room: %s (%s)\n", order.Room.Number, order.Room.RoomType.Name)
	fmt.Fprintf(&b, "Tariff: %s\n", order.Tariff.Title)

	arrival := "—"
	if order.ArrivalTime != nil && *order.ArrivalTime != "" {
		arrival = *order.ArrivalTime
	}
	fmt.Fprintf(&b, "Check-in: %s (from %s)\n", order.CheckIn.Format("2006-01-02"), arrival)
	fmt.Fprintf(&b, "Check-out: %s\n", order.CheckOut.Format("2006-01-02"))
	fmt.Fprintf(&b, "Nights: %d\n", order.Nights())

	b.WriteString("Conveniences:\n")
	conveniences := order.Conveniences
	if len(conveniences) == 0 {
		conveniences = order.Room.RoomType.Conveniences
	}
	if len(conveniences) > 0 {
		for _, conv := range conveniences {
			fmt.Fprintf(&b, " - %s\n", conv.Name)
		}
	} else {
		b.WriteString(" - —\n")
	}

	wishes := order.Wishes
	if strings.TrimSpace(wishes) == "" {
		wishes = "—"
	}
	fmt.Fprintf(&b, "\nWishes: %s\n", wishes)
	fmt.Fprintf(&b, "\nTotal price: %.2f\n", order.TotalPrice)

	return []byte(b.String())
}

// Generate writes the receipt artifact for the order and returns its store
// reference. A previous artifact under the same order number is overwritten.
func (s *ReceiptService) Generate(order *models.Order) (string, error) {
	key := fmt.Sprintf("receipt_%s.txt", order.OrderNumber)
	ref, err := s.Store.Write(key, s.Render(order))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReceiptWrite, err)
	}
	return ref, nil
}

// Remove deletes the order's receipt artifact. Best-effort: errors are
// logged and swallowed so order deletion never blocks on the artifact store.
func (s *ReceiptService) Remove(order *models.Order) {
	if err := s.Store.Remove(order.ReceiptFile); err != nil {
		log.Printf("warning: failed to remove receipt for order %s: %v", order.OrderNumber, err)
	}
}
