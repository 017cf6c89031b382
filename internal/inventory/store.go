// Package inventory provides the in-memory inventory store: the single source
// of truth for editions, prints and distributors during a session, with
// optimistic write-through mutation and rollback on remote failure.
package inventory

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"printstock/internal/core/id"
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
	"printstock/pkg/logger"
)

// Status is the store lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// EditionWithRelations is the read-side projection of an edition joined with
// its print and distributor. It is built from the canonical collections at
// query time and never stored, so foreign-key changes cannot leave it stale.
type EditionWithRelations struct {
	edition.Edition

	Print       artprint.Print           `json:"print"`
	Distributor *distributor.Distributor `json:"distributor,omitempty"`
}

// Store caches the full inventory in memory. All state, including the index
// maps, lives behind one RWMutex; the maps are private invariants and never
// escape. Mutations apply optimistically, write through to the Remote, and
// roll back completely when the remote write fails.
//
// Two overlapping mutations of the same record resolve last-remote-write-wins;
// the single-operator usage pattern makes this acceptable.
type Store struct {
	remote Remote

	mu           sync.RWMutex
	status       Status
	errMsg       string
	editions     []edition.Edition
	prints       []artprint.Print
	distributors []distributor.Distributor

	editionPos     map[id.ID]int
	printPos       map[id.ID]int
	distributorPos map[id.ID]int

	// searchIndex maps edition id to a lowercase "display name + print name"
	// key for fast substring filtering.
	searchIndex map[id.ID]string

	revision uint64
}

// NewStore creates an empty store backed by remote.
func NewStore(remote Remote) *Store {
	return &Store{
		remote:         remote,
		status:         StatusIdle,
		editionPos:     make(map[id.ID]int),
		printPos:       make(map[id.ID]int),
		distributorPos: make(map[id.ID]int),
		searchIndex:    make(map[id.ID]string),
	}
}

// Initialize fetches all three collections in parallel and builds the
// indexes. A failed load records the error and leaves the store not ready;
// calling again retries. Concurrent calls while a load is in flight are
// no-ops.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.status == StatusLoading {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusLoading
	s.errMsg = ""
	s.mu.Unlock()

	var (
		editions     []edition.Edition
		prints       []artprint.Print
		distributors []distributor.Distributor
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		editions, err = s.remote.ListEditions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		prints, err = s.remote.ListPrints(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		distributors, err = s.remote.ListDistributors(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.status = StatusError
		s.errMsg = err.Error()
		s.mu.Unlock()
		logger.Error(ctx, "inventory load failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.editions = editions
	s.prints = prints
	s.distributors = distributors
	s.rebuildIndexesLocked()
	s.status = StatusReady
	s.revision++
	s.mu.Unlock()

	logger.Info(ctx, "inventory loaded",
		"editions", len(editions),
		"prints", len(prints),
		"distributors", len(distributors),
	)
	return nil
}

// Status returns the store lifecycle state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the last load error message, empty when none.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Revision returns a counter bumped on every applied state change.
// Report caching keys off it.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// UpdateEdition optimistically applies the patch to one edition and writes it
// through. Returns false without mutating anything when the id is unknown or
// the merged record fails validation; returns false after a full rollback
// when the remote write fails.
func (s *Store) UpdateEdition(ctx context.Context, editionID id.ID, patch edition.Patch) bool {
	s.mu.Lock()
	pos, ok := s.editionPos[editionID]
	if !ok {
		s.mu.Unlock()
		logger.Debug(ctx, "update for unknown edition ignored", "edition_id", editionID)
		return false
	}

	// Patch.Apply writes fresh pointers rather than mutating through existing
	// ones, so a shallow copy is a safe rollback snapshot.
	prev := s.editions[pos]
	next := prev
	patch.Apply(&next)
	if err := next.Validate(ctx); err != nil {
		s.mu.Unlock()
		logger.Debug(ctx, "update rejected for invalid edition state",
			"edition_id", editionID, "error", err)
		return false
	}
	next.UpdatedAt = time.Now().UTC()

	s.editions[pos] = next
	s.searchIndex[editionID] = s.searchKeyLocked(next)
	s.revision++
	s.mu.Unlock()

	if err := s.remote.UpdateEdition(ctx, editionID, patch); err != nil {
		s.mu.Lock()
		if pos, ok := s.editionPos[editionID]; ok {
			s.editions[pos] = prev
			s.searchIndex[editionID] = s.searchKeyLocked(prev)
		}
		s.revision++
		s.mu.Unlock()
		logger.Warn(ctx, "edition update rolled back", "edition_id", editionID, "error", err)
		return false
	}
	return true
}

// UpdateEditions applies the same patch to a batch of editions with one
// remote write. Unknown ids are skipped; if none resolve, or any merged
// record fails validation, nothing happens and false is returned. A failed
// remote write rolls back every affected record.
func (s *Store) UpdateEditions(ctx context.Context, editionIDs []id.ID, patch edition.Patch) bool {
	now := time.Now().UTC()

	s.mu.Lock()
	targets := make([]id.ID, 0, len(editionIDs))
	prevs := make(map[id.ID]edition.Edition, len(editionIDs))
	nexts := make(map[id.ID]edition.Edition, len(editionIDs))
	for _, editionID := range editionIDs {
		pos, ok := s.editionPos[editionID]
		if !ok {
			continue
		}
		if _, seen := prevs[editionID]; seen {
			continue
		}
		prev := s.editions[pos]

		next := prev
		patch.Apply(&next)
		if err := next.Validate(ctx); err != nil {
			s.mu.Unlock()
			logger.Debug(ctx, "batch update rejected for invalid edition state",
				"edition_id", editionID, "error", err)
			return false
		}
		next.UpdatedAt = now

		prevs[editionID] = prev
		nexts[editionID] = next
		targets = append(targets, editionID)
	}
	if len(targets) == 0 {
		s.mu.Unlock()
		logger.Debug(ctx, "batch update matched no editions")
		return false
	}
	for editionID, next := range nexts {
		s.editions[s.editionPos[editionID]] = next
		s.searchIndex[editionID] = s.searchKeyLocked(next)
	}
	s.revision++
	s.mu.Unlock()

	if err := s.remote.UpdateEditions(ctx, targets, patch); err != nil {
		s.mu.Lock()
		for editionID, prev := range prevs {
			if pos, ok := s.editionPos[editionID]; ok {
				s.editions[pos] = prev
				s.searchIndex[editionID] = s.searchKeyLocked(prev)
			}
		}
		s.revision++
		s.mu.Unlock()
		logger.Warn(ctx, "batch edition update rolled back",
			"count", len(targets), "error", err)
		return false
	}
	return true
}

// ToggleDistributorFavorite optimistically flips the favorite flag on a
// distributor with the same rollback discipline as edition updates.
func (s *Store) ToggleDistributorFavorite(ctx context.Context, distributorID id.ID) bool {
	s.mu.Lock()
	pos, ok := s.distributorPos[distributorID]
	if !ok {
		s.mu.Unlock()
		logger.Debug(ctx, "toggle for unknown distributor ignored", "distributor_id", distributorID)
		return false
	}

	prev := s.distributors[pos]
	next := prev
	next.IsFavorite = !prev.IsFavorite
	next.UpdatedAt = time.Now().UTC()
	s.distributors[pos] = next
	s.revision++
	s.mu.Unlock()

	fields := map[string]any{"is_favorite": next.IsFavorite}
	if err := s.remote.UpdateDistributor(ctx, distributorID, fields); err != nil {
		s.mu.Lock()
		if pos, ok := s.distributorPos[distributorID]; ok {
			s.distributors[pos] = prev
		}
		s.revision++
		s.mu.Unlock()
		logger.Warn(ctx, "favorite toggle rolled back", "distributor_id", distributorID, "error", err)
		return false
	}
	return true
}

// Editions returns the full joined projection.
func (s *Store) Editions() []EditionWithRelations {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]EditionWithRelations, len(s.editions))
	for i, e := range s.editions {
		out[i] = s.projectLocked(e)
	}
	return out
}

// Edition returns one joined edition by id.
func (s *Store) Edition(editionID id.ID) (EditionWithRelations, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.editionPos[editionID]
	if !ok {
		return EditionWithRelations{}, false
	}
	return s.projectLocked(s.editions[pos]), true
}

// SearchEditions filters editions whose display name or print name contains
// the query (case-insensitive). An empty query returns everything.
func (s *Store) SearchEditions(query string) []EditionWithRelations {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Editions()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []EditionWithRelations
	for _, e := range s.editions {
		if strings.Contains(s.searchIndex[e.ID], q) {
			out = append(out, s.projectLocked(e))
		}
	}
	return out
}

// Prints returns a copy of the print collection.
func (s *Store) Prints() []artprint.Print {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]artprint.Print, len(s.prints))
	copy(out, s.prints)
	return out
}

// Distributors returns a copy of the distributor collection.
func (s *Store) Distributors() []distributor.Distributor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]distributor.Distributor, len(s.distributors))
	copy(out, s.distributors)
	return out
}

// Snapshot returns copies of the canonical edition and distributor
// collections for the report engine.
func (s *Store) Snapshot() ([]edition.Edition, []distributor.Distributor) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	editions := make([]edition.Edition, len(s.editions))
	copy(editions, s.editions)
	distributors := make([]distributor.Distributor, len(s.distributors))
	copy(distributors, s.distributors)
	return editions, distributors
}

// PrintsByID returns a lookup of print id to print for the report engine.
func (s *Store) PrintsByID() map[id.ID]artprint.Print {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[id.ID]artprint.Print, len(s.prints))
	for _, p := range s.prints {
		out[p.ID] = p
	}
	return out
}

// --- internal ---

// rebuildIndexesLocked rebuilds every index map from the collections.
// Caller holds the write lock.
func (s *Store) rebuildIndexesLocked() {
	s.printPos = make(map[id.ID]int, len(s.prints))
	for i, p := range s.prints {
		s.printPos[p.ID] = i
	}

	s.distributorPos = make(map[id.ID]int, len(s.distributors))
	for i, d := range s.distributors {
		s.distributorPos[d.ID] = i
	}

	s.editionPos = make(map[id.ID]int, len(s.editions))
	s.searchIndex = make(map[id.ID]string, len(s.editions))
	for i, e := range s.editions {
		s.editionPos[e.ID] = i
		s.searchIndex[e.ID] = s.searchKeyLocked(e)
	}
}

// searchKeyLocked builds the lowercase search key for an edition.
// Caller holds the lock.
func (s *Store) searchKeyLocked(e edition.Edition) string {
	key := strings.ToLower(e.DisplayName)
	if pos, ok := s.printPos[e.PrintID]; ok {
		key += " " + strings.ToLower(s.prints[pos].Name)
	}
	return key
}

// projectLocked joins an edition with its print and distributor.
// Caller holds the lock.
func (s *Store) projectLocked(e edition.Edition) EditionWithRelations {
	out := EditionWithRelations{Edition: e}
	if pos, ok := s.printPos[e.PrintID]; ok {
		out.Print = s.prints[pos]
	}
	if e.DistributorID != nil {
		if pos, ok := s.distributorPos[*e.DistributorID]; ok {
			d := s.distributors[pos]
			out.Distributor = &d
		}
	}
	return out
}
