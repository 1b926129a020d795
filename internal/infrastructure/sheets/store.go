// Package sheets implements the sheet-emulation storage engine: a named
// collection of header/row tables with spreadsheet semantics, CSV bulk
// import, and whole-envelope persistence through a durable key-value slot.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/starterbox/backend/internal/domain/crm"
	"github.com/starterbox/backend/internal/domain/shared"
)

// Sheet is a named table: an ordered header list fixed at creation and an
// ordered, append-only row list. Cells are positionally interpreted by
// consumers, so short and long rows are tolerated.
type Sheet struct {
	Headers []string  `json:"headers"`
	Rows    []crm.Row `json:"rows"`
}

// Slot is the durable key-value slot holding the serialized envelope.
// The envelope is atomic at the granularity of the whole store.
type Slot interface {
	// Load returns the stored envelope, or found=false when the slot is empty.
	Load(ctx context.Context) (data []byte, found bool, err error)
	// Save replaces the stored envelope.
	Save(ctx context.Context, data []byte) error
	// Delete discards the stored envelope.
	Delete(ctx context.Context) error
}

// Store is the sheet-emulation storage engine. All mutating operations end
// with a full-envelope save; at most the single failed operation may be lost
// on a save failure, never a partially applied one.
type Store struct {
	mu        sync.Mutex
	slot      Slot
	logger    *zap.Logger
	readDelay time.Duration
	seed      map[string]Sheet
	sheets    map[string]*Sheet
}

// StoreOption is a functional option for Store configuration
type StoreOption func(*Store)

// WithReadDelay injects an artificial delay on read paths to mirror
// remote-API ergonomics for UI loading states. Defaults to zero so tests
// and the facade run without it.
func WithReadDelay(d time.Duration) StoreOption {
	return func(s *Store) {
		s.readDelay = d
	}
}

// WithSeed overrides the factory-default sheet collection
func WithSeed(seed map[string]Sheet) StoreOption {
	return func(s *Store) {
		s.seed = seed
	}
}

// NewStore creates a sheet store backed by the given durable slot.
// Call Initialize before using it.
func NewStore(slot Slot, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		slot:   slot,
		logger: logger,
		seed:   DefaultSeed(),
		sheets: make(map[string]*Sheet),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize rehydrates the store from the durable envelope, or populates it
// from seed data on first run. A corrupt or unreadable envelope degrades to
// seed defaults rather than failing; only the persist of the fresh seed can
// return an error.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load envelope, falling back to seed defaults", zap.Error(err))
		return s.seedAndPersist(ctx)
	}
	if !found {
		s.logger.Info("no stored envelope, initializing seed defaults")
		return s.seedAndPersist(ctx)
	}

	var envelope map[string]Sheet
	if err := json.Unmarshal(data, &envelope); err != nil {
		s.logger.Warn("corrupt envelope, falling back to seed defaults", zap.Error(err))
		return s.seedAndPersist(ctx)
	}

	sheets := make(map[string]*Sheet, len(envelope))
	for name, sh := range envelope {
		copied := sh
		sheets[name] = &copied
	}
	// A sheet added since the envelope was written rehydrates from seed.
	for name, sh := range s.seed {
		if _, ok := sheets[name]; !ok {
			sheets[name] = cloneSheet(sh)
		}
	}
	s.sheets = sheets
	s.logger.Info("envelope rehydrated", zap.Int("sheets", len(s.sheets)))
	return nil
}

// GetRows returns a copy of the named sheet's rows in positional order
func (s *Store) GetRows(ctx context.Context, sheetName string) ([]crm.Row, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[sheetName]
	if !ok {
		return nil, shared.NewNotFoundError("sheet", sheetName)
	}
	rows := make([]crm.Row, len(sheet.Rows))
	for i, r := range sheet.Rows {
		rows[i] = r.Clone()
	}
	return rows, nil
}

// Headers returns the named sheet's header list
func (s *Store) Headers(ctx context.Context, sheetName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[sheetName]
	if !ok {
		return nil, shared.NewNotFoundError("sheet", sheetName)
	}
	headers := make([]string, len(sheet.Headers))
	copy(headers, sheet.Headers)
	return headers, nil
}

// AppendRow adds a row at the end of the named sheet and persists the
// envelope before returning. The row's index is its 0-based append order.
func (s *Store) AppendRow(ctx context.Context, sheetName string, row crm.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[sheetName]
	if !ok {
		return shared.NewNotFoundError("sheet", sheetName)
	}

	sheet.Rows = append(sheet.Rows, row.Clone())
	if err := s.persist(ctx); err != nil {
		sheet.Rows = sheet.Rows[:len(sheet.Rows)-1]
		return err
	}
	return nil
}

// UpdateRow replaces the row at rowIndex and persists the envelope before
// returning. An out-of-bounds index fails with INDEX_OUT_OF_RANGE; it is
// never clamped.
func (s *Store) UpdateRow(ctx context.Context, sheetName string, rowIndex int, row crm.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[sheetName]
	if !ok {
		return shared.NewNotFoundError("sheet", sheetName)
	}
	if rowIndex < 0 || rowIndex >= len(sheet.Rows) {
		return shared.NewIndexOutOfRangeError(rowIndex, len(sheet.Rows))
	}

	previous := sheet.Rows[rowIndex]
	sheet.Rows[rowIndex] = row.Clone()
	if err := s.persist(ctx); err != nil {
		sheet.Rows[rowIndex] = previous
		return err
	}
	return nil
}

// BulkImport parses rawText as CSV and appends every data row to the named
// sheet verbatim, persisting once after all appends. When the first parsed
// row's first cell case-insensitively contains the sheet's first header
// label it is taken for a header row and skipped. Returns the number of
// rows added. The batch is all-or-nothing: a failed persist leaves the
// sheet unchanged.
func (s *Store) BulkImport(ctx context.Context, sheetName, rawText string) (int, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[sheetName]
	if !ok {
		return 0, shared.NewNotFoundError("sheet", sheetName)
	}
	if !utf8.ValidString(rawText) {
		return 0, shared.NewParseError("import text is not valid UTF-8")
	}

	parsed := Parse(rawText)
	if len(parsed) == 0 {
		return 0, nil
	}

	start := 0
	if len(sheet.Headers) > 0 && looksLikeHeader(parsed[0], sheet.Headers[0]) {
		start = 1
	}

	previousLen := len(sheet.Rows)
	for _, cells := range parsed[start:] {
		sheet.Rows = append(sheet.Rows, crm.StringsRow(cells...))
	}
	added := len(sheet.Rows) - previousLen

	if err := s.persist(ctx); err != nil {
		sheet.Rows = sheet.Rows[:previousLen]
		return 0, err
	}

	s.logger.Info("bulk import completed",
		zap.String("sheet", sheetName),
		zap.Int("rows_added", added),
		zap.Bool("header_skipped", start == 1),
	)
	return added, nil
}

// Reset discards the durable envelope and reinitializes every sheet to its
// seed defaults. Destructive and irreversible; callers are expected to have
// confirmed with the user.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.slot.Delete(ctx); err != nil {
		return shared.NewPersistenceError(fmt.Sprintf("failed to discard envelope: %v", err))
	}
	s.logger.Warn("store reset to seed defaults")
	return s.seedAndPersist(ctx)
}

// seedAndPersist replaces all sheets with pristine seed copies and saves.
// Callers must hold the lock.
func (s *Store) seedAndPersist(ctx context.Context) error {
	sheets := make(map[string]*Sheet, len(s.seed))
	for name, sh := range s.seed {
		sheets[name] = cloneSheet(sh)
	}
	s.sheets = sheets
	return s.persist(ctx)
}

// persist saves the whole envelope to the durable slot. Callers must hold
// the lock.
func (s *Store) persist(ctx context.Context) error {
	envelope := make(map[string]Sheet, len(s.sheets))
	for name, sheet := range s.sheets {
		envelope[name] = *sheet
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return shared.NewPersistenceError(fmt.Sprintf("failed to serialize envelope: %v", err))
	}
	if err := s.slot.Save(ctx, data); err != nil {
		return shared.NewPersistenceError(fmt.Sprintf("failed to save envelope: %v", err))
	}
	return nil
}

func (s *Store) simulateLatency(ctx context.Context) error {
	if s.readDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.readDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// looksLikeHeader applies the header-detection heuristic: the candidate
// row's first cell case-insensitively contains the sheet's first header
// label. Deliberately lenient for hand-exported CSVs ("Product SKU" still
// matches a "SKU" sheet).
func looksLikeHeader(firstRow []string, firstHeader string) bool {
	if len(firstRow) == 0 || firstHeader == "" {
		return false
	}
	return strings.Contains(strings.ToLower(firstRow[0]), strings.ToLower(firstHeader))
}

func cloneSheet(sh Sheet) *Sheet {
	headers := make([]string, len(sh.Headers))
	copy(headers, sh.Headers)
	rows := make([]crm.Row, len(sh.Rows))
	for i, r := range sh.Rows {
		rows[i] = r.Clone()
	}
	return &Sheet{Headers: headers, Rows: rows}
}
