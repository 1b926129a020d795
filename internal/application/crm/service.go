package crm

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/starterbox/backend/internal/domain/crm"
	"github.com/starterbox/backend/internal/domain/shared"
	"github.com/starterbox/backend/internal/infrastructure/sheets"
)

// UnknownCourseID is the sentinel course id used when a free-text
// customer name cannot be resolved. Order creation never blocks on an
// unmatched name.
const UnknownCourseID = "Unknown"

// SheetStore is the slice of the sheet store the facade depends on
type SheetStore interface {
	GetRows(ctx context.Context, sheetName string) ([]crm.Row, error)
	AppendRow(ctx context.Context, sheetName string, row crm.Row) error
	UpdateRow(ctx context.Context, sheetName string, rowIndex int, row crm.Row) error
	BulkImport(ctx context.Context, sheetName, rawText string) (int, error)
	Reset(ctx context.Context) error
}

// Service is the domain facade: the only component the interface and
// assistant layers talk to. It owns the sheet store and the published
// snapshot of mapped entities.
type Service struct {
	store       SheetStore
	logger      *zap.Logger
	settleDelay time.Duration
	now         func() time.Time
	snapshot    atomic.Pointer[Snapshot]
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithSettleDelay sets the pause between a bulk import and the refresh
// that follows it
func WithSettleDelay(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.settleDelay = d
	}
}

// WithClock overrides the wall clock, used by tests to mint stable ids
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the facade over the given store
func NewService(store SheetStore, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:       store,
		logger:      logger,
		settleDelay: 500 * time.Millisecond,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the last published snapshot. Before the first
// successful refresh it returns an empty snapshot with a zero LastSync.
func (s *Service) Snapshot() Snapshot {
	if snap := s.snapshot.Load(); snap != nil {
		return *snap
	}
	return Snapshot{}
}

// Refresh reads all six sheets in parallel, maps them, and publishes
// the result as one atomic swap. If any sheet read fails the previous
// snapshot stays published untouched.
func (s *Service) Refresh(ctx context.Context) error {
	var next Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.store.GetRows(gctx, sheets.SheetCustomers)
		if err != nil {
			return err
		}
		next.Customers = make([]crm.Customer, len(rows))
		for i, row := range rows {
			next.Customers[i] = crm.CustomerFromRow(row, i)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.GetRows(gctx, sheets.SheetProducts)
		if err != nil {
			return err
		}
		next.Products = make([]crm.Product, len(rows))
		for i, row := range rows {
			next.Products[i] = crm.ProductFromRow(row, i)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.GetRows(gctx, sheets.SheetOrders)
		if err != nil {
			return err
		}
		next.Orders = make([]crm.Order, len(rows))
		for i, row := range rows {
			next.Orders[i] = crm.OrderFromRow(row, i)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.GetRows(gctx, sheets.SheetInvoices)
		if err != nil {
			return err
		}
		next.Invoices = make([]crm.Invoice, len(rows))
		for i, row := range rows {
			next.Invoices[i] = crm.InvoiceFromRow(row, i)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.GetRows(gctx, sheets.SheetMockups)
		if err != nil {
			return err
		}
		next.Mockups = make([]crm.Mockup, len(rows))
		for i, row := range rows {
			next.Mockups[i] = crm.MockupFromRow(row, i)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.GetRows(gctx, sheets.SheetSamples)
		if err != nil {
			return err
		}
		next.Samples = make([]crm.SampleRequest, len(rows))
		for i, row := range rows {
			next.Samples[i] = crm.SampleRequestFromRow(row, i)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("refresh failed, keeping previous snapshot", zap.Error(err))
		return err
	}

	next.LastSync = s.now()
	s.snapshot.Store(&next)
	s.logger.Debug("snapshot published",
		zap.Int("customers", len(next.Customers)),
		zap.Int("orders", len(next.Orders)),
	)
	return nil
}

// CreateOrder appends a new order and its linked unpaid invoice, then
// refreshes so callers observe the new rows. The customer name is
// resolved by case-insensitive substring match against known customers;
// no match falls back to the Unknown sentinel rather than failing.
func (s *Service) CreateOrder(ctx context.Context, customerName, details string, total float64) (*CreateOrderResult, error) {
	if s.snapshot.Load() == nil {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	courseID := s.resolveCourseID(customerName)
	now := s.now()
	orderID := strconv.FormatInt(now.UnixMilli(), 10)
	invoiceID := "INV-" + orderID
	today := now.Format("2006-01-02")

	order := crm.Order{
		ID:        orderID,
		CourseID:  courseID,
		Status:    crm.OrderStatusAwaitingLink,
		Details:   details,
		CreatedAt: today,
	}
	if err := s.store.AppendRow(ctx, sheets.SheetOrders, order.Row()); err != nil {
		return nil, err
	}

	invoice := crm.Invoice{
		ID:        invoiceID,
		OrderID:   orderID,
		CourseID:  courseID,
		Amount:    total,
		Status:    crm.InvoiceStatusUnpaid,
		CreatedAt: today,
	}
	if err := s.store.AppendRow(ctx, sheets.SheetInvoices, invoice.Row()); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", orderID),
		zap.String("course_id", courseID),
		zap.Float64("total", total),
	)

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return &CreateOrderResult{OrderID: orderID, InvoiceID: invoiceID, CourseID: courseID}, nil
}

// UpdateOrderPartial merges the non-nil update fields over the stored
// order and rewrites its row in place. An unknown order id is a silent
// no-op; the caller may be racing a refresh. The merge works on a copy
// of the published order; the snapshot only changes through the final
// refresh, so a failed persist leaves readers on the last good state.
func (s *Service) UpdateOrderPartial(ctx context.Context, orderID string, updates OrderUpdate) error {
	snap := s.Snapshot()
	var order crm.Order
	found := false
	for i := range snap.Orders {
		if snap.Orders[i].ID == orderID {
			order = snap.Orders[i]
			found = true
			break
		}
	}
	if !found {
		s.logger.Warn("order update skipped, id not found", zap.String("order_id", orderID))
		return nil
	}

	if updates.Status != nil {
		status := crm.OrderStatus(*updates.Status)
		if !crm.ValidOrderStatus(status) {
			status = crm.ParseOrderStatus(*updates.Status)
		}
		order.Status = status
	}
	if updates.Details != nil {
		order.Details = *updates.Details
	}
	if updates.TrackingNumber != nil {
		order.TrackingNumber = *updates.TrackingNumber
	}
	if updates.ShippingCarrier != nil {
		order.ShippingCarrier = *updates.ShippingCarrier
	}
	if updates.ProductionLink != nil {
		order.ProductionLink = *updates.ProductionLink
	}
	if updates.JobNumber != nil {
		order.JobNumber = *updates.JobNumber
	}

	if err := s.store.UpdateRow(ctx, sheets.SheetOrders, order.RowIndex, order.Row()); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// UpdateOrderStatus sets an order to an explicit member of the status
// vocabulary. Unlike partial updates it rejects values outside it.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, status crm.OrderStatus) error {
	if !crm.ValidOrderStatus(status) {
		return shared.NewInvalidInputError("status", string(status))
	}
	raw := string(status)
	return s.UpdateOrderPartial(ctx, orderID, OrderUpdate{Status: &raw})
}

// AddSampleRequest logs a new sample request with a minted id, status
// New, and today's date, then refreshes.
func (s *Service) AddSampleRequest(ctx context.Context, customerName, address, items string) (*crm.SampleRequest, error) {
	now := s.now()
	sample := crm.SampleRequest{
		ID:             "SMP-" + strconv.FormatInt(now.UnixMilli(), 10),
		CustomerName:   customerName,
		Address:        address,
		ItemsRequested: items,
		Status:         crm.SampleStatusNew,
		RequestDate:    now.Format("2006-01-02"),
	}
	if err := s.store.AppendRow(ctx, sheets.SheetSamples, sample.Row()); err != nil {
		return nil, err
	}
	s.logger.Info("sample request logged", zap.String("sample_id", sample.ID))

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return &sample, nil
}

// ImportToSheet bulk-imports CSV text into the named sheet, waits for
// persistence to settle, and refreshes. Import failures propagate and
// commit nothing.
func (s *Service) ImportToSheet(ctx context.Context, sheetName, csvText string) (int, error) {
	count, err := s.store.BulkImport(ctx, sheetName, csvText)
	if err != nil {
		return 0, err
	}

	if s.settleDelay > 0 {
		select {
		case <-time.After(s.settleDelay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	if err := s.Refresh(ctx); err != nil {
		return 0, err
	}
	return count, nil
}

// ResetData discards everything and reseeds the store with defaults.
// Destructive; callers confirm before invoking.
func (s *Service) ResetData(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	s.logger.Warn("data reset to seed defaults")
	return s.Refresh(ctx)
}

// resolveCourseID maps a free-text customer name onto a known customer
// id; first case-insensitive substring match wins
func (s *Service) resolveCourseID(customerName string) string {
	needle := strings.ToLower(strings.TrimSpace(customerName))
	if needle == "" {
		return UnknownCourseID
	}
	snap := s.Snapshot()
	for _, c := range snap.Customers {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c.ID
		}
	}
	return UnknownCourseID
}
