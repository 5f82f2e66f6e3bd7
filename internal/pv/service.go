package pv

import (
	"fmt"
	"sort"
	"sync"
)

// VaultService coordinates the record store, the file store and the external
// collaborators to carry out user-level vault operations. Mutating operations
// are serialized.
type VaultService struct {
	mu       sync.Mutex
	database Database
	files    FileStore
	source   PhotoSource
	exporter Exporter
	logger   Logger
	clock    Clock
}

// NewVaultService creates a new VaultService with the provided dependencies.
// source and exporter may be nil when not configured.
func NewVaultService(database Database, files FileStore, source PhotoSource, exporter Exporter, logger Logger, clock Clock) *VaultService {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &VaultService{
		database: database,
		files:    files,
		source:   source,
		exporter: exporter,
		logger:   logger,
		clock:    clock,
	}
}

func photoItem(id int64) string {
	return fmt.Sprintf("photo %d", id)
}

// albumSet collects album ids in first-seen order.
type albumSet struct {
	ids  []int64
	seen map[int64]bool
}

func (s *albumSet) add(id int64) {
	if s.seen == nil {
		s.seen = make(map[int64]bool)
	}
	if !s.seen[id] {
		s.seen[id] = true
		s.ids = append(s.ids, id)
	}
}

func (s *albumSet) sorted() []int64 {
	ids := append([]int64(nil), s.ids...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
