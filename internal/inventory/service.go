// internal/inventory/service.go
package inventory

import "context"

// Store persists the full SKU mapping. Load on a missing backing file returns
// an empty map; Save must be atomic with respect to readers of the file.
type Store interface {
	Load() (map[string]SKU, error)
	Save(map[string]SKU) error
}

// Auditor records one line per completed mutating action.
type Auditor interface {
	Append(userID, description string) error
}

// Service defines the interface for the inventory engine. Each operation
// returns the user-facing reply text; failures from the error taxonomy in
// domain.go are returned as wrapped sentinel errors and rendered by the
// caller.
type Service interface {
	Add(ctx context.Context, userID, name, category, size string, qty int) (string, error)
	Restock(ctx context.Context, userID, code string, qty int) (string, error)
	Sell(ctx context.Context, userID, code string, qty int) (string, error)
	Transfer(ctx context.Context, userID, code string, qty int) (string, error)
	Delete(ctx context.Context, userID, code string, qty int, location string) (string, error)
	Search(ctx context.Context, keyword string) (string, error)
	Overview(ctx context.Context) (string, error)
}
