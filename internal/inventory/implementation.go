// internal/inventory/implementation.go
package inventory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// service implements the Service interface.
type service struct {
	store     Store
	audit     Auditor
	tracer    trace.Tracer
	mutations metric.Int64Counter

	// mu serializes every load-mutate-save sequence. The backing file is a
	// shared resource written whole on every mutation; without this lock two
	// concurrent users lose updates.
	mu sync.RWMutex

	// randInt is swapped out in tests to force code collisions.
	randInt func(n int) int
}

// NewService creates a new inventory engine instance.
func NewService(store Store, audit Auditor) Service {
	meter := otel.Meter("stockline/inventory")
	mutations, _ := meter.Int64Counter("inventory.mutations",
		metric.WithDescription("completed inventory mutations"))

	return &service{
		store:     store,
		audit:     audit,
		tracer:    otel.Tracer("stockline/inventory"),
		mutations: mutations,
		randInt:   rand.Intn,
	}
}

// Add creates a new SKU with the full initial quantity in the warehouse.
func (s *service) Add(ctx context.Context, userID, name, category, size string, qty int) (string, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.add",
		trace.WithAttributes(attribute.String("sku.name", name), attribute.Int("qty", qty)))
	defer span.End()

	if qty < 0 {
		return "", fmt.Errorf("add %q qty %d: %w", name, qty, ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}

	code := s.newCode(ParseCategory(category), ParseSize(size))
	if _, exists := data[code]; exists {
		return "", fmt.Errorf("add %q: code %s: %w", name, code, ErrDuplicateCode)
	}

	data[code] = SKU{
		Code:      code,
		Name:      name,
		Category:  category,
		Size:      normalizeSize(size),
		Center:    0,
		Warehouse: qty,
	}
	if err := s.store.Save(data); err != nil {
		return "", fmt.Errorf("failed to save inventory: %w", err)
	}
	s.logAction(ctx, userID, fmt.Sprintf("新增商品 %s（%s）數量：%d", code, name, qty))

	span.SetAttributes(attribute.String("sku.code", code))
	return fmt.Sprintf("新增商品成功，代碼為 %s", code), nil
}

// newCode assembles a SKU code: category prefix, four random digits, size
// digit. Uniqueness is checked by the caller against the loaded mapping; a
// collision fails the add rather than overwriting.
func (s *service) newCode(category Category, size Size) string {
	return fmt.Sprintf("%s%04d%s", category.Prefix(), s.randInt(10000), size.Digit())
}

// Restock increases the warehouse quantity of an existing SKU.
func (s *service) Restock(ctx context.Context, userID, code string, qty int) (string, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.restock",
		trace.WithAttributes(attribute.String("sku.code", code), attribute.Int("qty", qty)))
	defer span.End()

	if qty < 0 {
		return "", fmt.Errorf("restock %s qty %d: %w", code, qty, ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}

	sku, ok := data[code]
	if !ok {
		return "", fmt.Errorf("restock %s: %w", code, ErrNotFound)
	}

	sku.Warehouse += qty
	data[code] = sku
	if err := s.store.Save(data); err != nil {
		return "", fmt.Errorf("failed to save inventory: %w", err)
	}
	s.logAction(ctx, userID, fmt.Sprintf("補貨 %s 數量：%d", code, qty))

	return fmt.Sprintf("補貨成功，目前倉庫庫存：%d", sku.Warehouse), nil
}

// Sell decreases the center quantity of an existing SKU.
func (s *service) Sell(ctx context.Context, userID, code string, qty int) (string, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.sell",
		trace.WithAttributes(attribute.String("sku.code", code), attribute.Int("qty", qty)))
	defer span.End()

	if qty < 0 {
		return "", fmt.Errorf("sell %s qty %d: %w", code, qty, ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}

	sku, ok := data[code]
	if !ok {
		return "", fmt.Errorf("sell %s: %w", code, ErrNotFound)
	}
	if sku.Center < qty {
		return "", fmt.Errorf("sell %s qty %d, center %d: %w", code, qty, sku.Center, ErrInsufficientStock)
	}

	sku.Center -= qty
	data[code] = sku
	if err := s.store.Save(data); err != nil {
		return "", fmt.Errorf("failed to save inventory: %w", err)
	}
	s.logAction(ctx, userID, fmt.Sprintf("販售 %s 數量：%d", code, qty))

	return fmt.Sprintf("販售成功，中心剩餘庫存：%d", sku.Center), nil
}

// Transfer moves quantity from the warehouse to the center.
func (s *service) Transfer(ctx context.Context, userID, code string, qty int) (string, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.transfer",
		trace.WithAttributes(attribute.String("sku.code", code), attribute.Int("qty", qty)))
	defer span.End()

	if qty < 0 {
		return "", fmt.Errorf("transfer %s qty %d: %w", code, qty, ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}

	sku, ok := data[code]
	if !ok {
		return "", fmt.Errorf("transfer %s: %w", code, ErrNotFound)
	}
	if sku.Warehouse < qty {
		return "", fmt.Errorf("transfer %s qty %d, warehouse %d: %w", code, qty, sku.Warehouse, ErrInsufficientStock)
	}

	sku.Warehouse -= qty
	sku.Center += qty
	data[code] = sku
	if err := s.store.Save(data); err != nil {
		return "", fmt.Errorf("failed to save inventory: %w", err)
	}
	s.logAction(ctx, userID, fmt.Sprintf("調貨 %s 數量：%d", code, qty))

	return fmt.Sprintf("調貨成功，中心：%d，倉庫：%d", sku.Center, sku.Warehouse), nil
}

// Delete removes quantity from one location of an existing SKU. The record
// itself is never removed, even when both locations reach zero.
func (s *service) Delete(ctx context.Context, userID, code string, qty int, location string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.delete",
		trace.WithAttributes(
			attribute.String("sku.code", code),
			attribute.Int("qty", qty),
			attribute.String("location", location),
		))
	defer span.End()

	if qty < 0 {
		return "", fmt.Errorf("delete %s qty %d: %w", code, qty, ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}

	sku, ok := data[code]
	if !ok {
		return "", fmt.Errorf("delete %s: %w", code, ErrNotFound)
	}

	loc := ParseLocation(location)
	var remaining int
	switch {
	case loc == LocationCenter && sku.Center >= qty:
		sku.Center -= qty
		remaining = sku.Center
	case loc == LocationWarehouse && sku.Warehouse >= qty:
		sku.Warehouse -= qty
		remaining = sku.Warehouse
	case loc == LocationUnknown:
		return "", fmt.Errorf("delete %s from %q: %w", code, location, ErrInvalidLocation)
	default:
		return "", fmt.Errorf("delete %s qty %d from %s: %w", code, qty, location, ErrInsufficientStock)
	}

	data[code] = sku
	if err := s.store.Save(data); err != nil {
		return "", fmt.Errorf("failed to save inventory: %w", err)
	}
	s.logAction(ctx, userID, fmt.Sprintf("刪除 %s %s 數量：%d", loc.Label(), code, qty))

	return fmt.Sprintf("刪除成功，目前%s庫存：%d", loc.Label(), remaining), nil
}

// Search finds SKUs whose code or name contains the keyword,
// case-insensitively. An empty keyword matches every record.
func (s *service) Search(ctx context.Context, keyword string) (string, error) {
	_, span := s.tracer.Start(ctx, "inventory.search",
		trace.WithAttributes(attribute.String("keyword", keyword)))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}

	needle := strings.ToLower(keyword)
	var lines []string
	for _, code := range sortedCodes(data) {
		sku := data[code]
		if strings.Contains(strings.ToLower(sku.Code), needle) ||
			strings.Contains(strings.ToLower(sku.Name), needle) {
			lines = append(lines,
				fmt.Sprintf("%s - %s (%s)\n中心: %d 倉庫: %d", sku.Code, sku.Name, sku.Size, sku.Center, sku.Warehouse))
		}
	}
	if len(lines) == 0 {
		return "找不到符合的商品", nil
	}
	return strings.Join(lines, "\n"), nil
}

// Overview lists every SKU with positive stock, partitioned by location.
func (s *service) Overview(ctx context.Context) (string, error) {
	_, span := s.tracer.Start(ctx, "inventory.overview")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}

	var center, warehouse []string
	for _, code := range sortedCodes(data) {
		sku := data[code]
		if sku.Center > 0 {
			center = append(center, fmt.Sprintf("%s - %s(%s): %d", sku.Code, sku.Name, sku.Size, sku.Center))
		}
		if sku.Warehouse > 0 {
			warehouse = append(warehouse, fmt.Sprintf("%s - %s(%s): %d", sku.Code, sku.Name, sku.Size, sku.Warehouse))
		}
	}

	return "【中心庫存】\n" + strings.Join(center, "\n") +
		"\n【倉庫庫存】\n" + strings.Join(warehouse, "\n"), nil
}

// logAction appends the audit record for a completed mutation. The store save
// already succeeded at this point; an audit failure must not undo the
// mutation, so it is recorded on the span instead of returned.
func (s *service) logAction(ctx context.Context, userID, description string) {
	s.mutations.Add(ctx, 1)
	if err := s.audit.Append(userID, description); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

// sortedCodes returns the mapping's keys in a stable order. The persisted
// mapping has no inherent order; replies should not reshuffle between calls.
func sortedCodes(data map[string]SKU) []string {
	codes := make([]string, 0, len(data))
	for code := range data {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
