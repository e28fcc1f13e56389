package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"bizhive/internal/access"
	"bizhive/internal/model"
	"bizhive/internal/repository"
	ws "bizhive/internal/websocket"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type CreateItemRequest struct {
	ProductName string           `json:"product_name" binding:"required,min=2,max=100"`
	SKU         string           `json:"sku" binding:"max=50"`
	Category    string           `json:"category" binding:"max=50"`
	Quantity    int              `json:"quantity" binding:"min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	MinStock    int              `json:"min_stock" binding:"min=0"`
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}

// Websocket payload
type InventoryEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

const (
	EventQuantityAdjusted = "inventory.quantity_adjusted"
	EventLowStock         = "inventory.low_stock"
)

var csvHeader = []string{"product_name", "sku", "category", "quantity", "unit_price", "min_stock"}

type InventoryService interface {
	ListByBranch(ctx context.Context, ac access.Context, branchID, search, category string) ([]model.InventoryItem, error)
	CreateItem(ctx context.Context, ac access.Context, branchID string, req CreateItemRequest) (*model.InventoryItem, error)
	AdjustQuantity(ctx context.Context, ac access.Context, itemID string, req AdjustQuantityRequest) (*model.InventoryItem, error)
	ExportCSV(ctx context.Context, ac access.Context, branchID string) ([]byte, error)
	ImportCSV(ctx context.Context, ac access.Context, branchID string, r io.Reader) (*ImportResult, error)
}

type inventoryService struct {
	items     repository.InventoryRepository
	branches  repository.BranchRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewInventoryService(
	items repository.InventoryRepository,
	branches repository.BranchRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		items:     items,
		branches:  branches,
		auditRepo: auditRepo,
		txManager: txManager,
		hub:       hub,
	}
}

func (s *inventoryService) ListByBranch(ctx context.Context, ac access.Context, branchID, search, category string) ([]model.InventoryItem, error) {
	branch, err := gateBranch(ctx, s.branches, ac, branchID, false)
	if err != nil {
		return nil, err
	}
	return s.items.ListByBranch(ctx, branch.ID, search, category)
}

func (s *inventoryService) CreateItem(ctx context.Context, ac access.Context, branchID string, req CreateItemRequest) (*model.InventoryItem, error) {
	branch, err := gateBranch(ctx, s.branches, ac, branchID, true)
	if err != nil {
		return nil, err
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, Validationf("unit_price cannot be negative")
	}

	item := &model.InventoryItem{
		BranchID:    branch.ID,
		ProductName: req.ProductName,
		SKU:         req.SKU,
		Category:    req.Category,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		MinStock:    req.MinStock,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.items.Create(txCtx, item); err != nil {
			return err
		}
		entry := auditEntry(ac.Email, model.AuditInsert, model.TableInventory, item.ID.String(), nil, item)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	if item.LowStock() {
		s.publishLowStock(item)
	}
	return item, nil
}

// AdjustQuantity applies a signed delta to an item's stock. The row is locked
// for the duration of the transaction and the check runs against the locked
// value, so two concurrent decrements cannot drive the quantity below zero.
func (s *inventoryService) AdjustQuantity(ctx context.Context, ac access.Context, itemID string, req AdjustQuantityRequest) (*model.InventoryItem, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, Validationf("invalid item id")
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := gateBranch(ctx, s.branches, ac, item.BranchID.String(), true); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.items.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		next := locked.Quantity + req.Delta
		if next < 0 {
			return Validationf("adjustment of %d would leave quantity negative (current %d)", req.Delta, locked.Quantity)
		}

		if err := s.items.UpdateQuantity(txCtx, id, next); err != nil {
			return err
		}

		before := *locked
		locked.Quantity = next
		entry := auditEntry(ac.Email, model.AuditUpdate, model.TableInventory, id.String(), before, locked)
		if err := s.auditRepo.Log(txCtx, entry); err != nil {
			return err
		}

		*item = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(InventoryEvent{
		Event: EventQuantityAdjusted,
		Data: map[string]interface{}{
			"branch_id":    item.BranchID.String(),
			"item_id":      item.ID.String(),
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"delta":        req.Delta,
		},
	})
	if item.LowStock() {
		s.publishLowStock(item)
	}

	return item, nil
}

func (s *inventoryService) ExportCSV(ctx context.Context, ac access.Context, branchID string) ([]byte, error) {
	branch, err := gateBranch(ctx, s.branches, ac, branchID, false)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByBranch(ctx, branch.ID, "", "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, item := range items {
		price := ""
		if item.UnitPrice != nil {
			price = item.UnitPrice.StringFixed(2)
		}
		record := []string{
			item.ProductName,
			item.SKU,
			item.Category,
			strconv.Itoa(item.Quantity),
			price,
			strconv.Itoa(item.MinStock),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportCSV bulk-creates items from a CSV matching the export layout. Import
// is insert-only and atomic: any bad row rejects the whole file, named by its
// line number, and existing items are never updated or matched by SKU.
func (s *inventoryService) ImportCSV(ctx context.Context, ac access.Context, branchID string, r io.Reader) (*ImportResult, error) {
	branch, err := gateBranch(ctx, s.branches, ac, branchID, true)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, Validationf("file is empty or not valid CSV")
	}
	if len(header) < len(csvHeader) {
		return nil, Validationf("header must contain columns: product_name, sku, category, quantity, unit_price, min_stock")
	}

	var items []model.InventoryItem
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, Validationf("line %d: not valid CSV", line)
		}

		item, err := parseCSVItem(record, branch.ID)
		if err != nil {
			return nil, Validationf("line %d: %v", line, err)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, Validationf("file contains no data rows")
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.items.CreateBatch(txCtx, items); err != nil {
			return err
		}
		for i := range items {
			entry := auditEntry(ac.Email, model.AuditInsert, model.TableInventory, items[i].ID.String(), nil, &items[i])
			if err := s.auditRepo.Log(txCtx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{Imported: len(items)}, nil
}

func parseCSVItem(record []string, branchID uuid.UUID) (model.InventoryItem, error) {
	var item model.InventoryItem
	if len(record) < len(csvHeader) {
		return item, errors.New("expected 6 columns")
	}

	name := record[0]
	if len(name) < 2 {
		return item, errors.New("product_name must be at least 2 characters")
	}

	quantity, err := strconv.Atoi(record[3])
	if err != nil || quantity < 0 {
		return item, errors.New("quantity must be a non-negative integer")
	}

	var unitPrice *decimal.Decimal
	if record[4] != "" {
		price, err := decimal.NewFromString(record[4])
		if err != nil || price.IsNegative() {
			return item, errors.New("unit_price must be a non-negative number")
		}
		unitPrice = &price
	}

	minStock, err := strconv.Atoi(record[5])
	if err != nil || minStock < 0 {
		return item, errors.New("min_stock must be a non-negative integer")
	}

	return model.InventoryItem{
		BranchID:    branchID,
		ProductName: name,
		SKU:         record[1],
		Category:    record[2],
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		MinStock:    minStock,
	}, nil
}

func (s *inventoryService) publishLowStock(item *model.InventoryItem) {
	s.publish(InventoryEvent{
		Event: EventLowStock,
		Data: map[string]interface{}{
			"branch_id":    item.BranchID.String(),
			"item_id":      item.ID.String(),
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
			"min_stock":    item.MinStock,
		},
	})
}

func (s *inventoryService) publish(event InventoryEvent) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Str("event", event.Event).Msg("failed to encode inventory event")
		return
	}
	s.hub.Broadcast <- payload
}
