package waitlist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory Repository ---
//
// Mimics the real repository's transactional contract: fn runs on a staged
// copy under the venue's lock and only commits when it returns nil.

type memRepo struct {
	mu         sync.Mutex
	venueLocks map[uuid.UUID]*sync.Mutex
	venues     map[uuid.UUID]bool
	entries    map[uuid.UUID]Entry
	seq        int

	failSave error // injected fault
}

func newMemRepo(venueIDs ...uuid.UUID) *memRepo {
	r := &memRepo{
		venueLocks: make(map[uuid.UUID]*sync.Mutex),
		venues:     make(map[uuid.UUID]bool),
		entries:    make(map[uuid.UUID]Entry),
	}
	for _, id := range venueIDs {
		r.venues[id] = true
	}
	return r
}

func (r *memRepo) venueLock(venueID uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venueLocks[venueID]; !ok {
		r.venueLocks[venueID] = &sync.Mutex{}
	}
	return r.venueLocks[venueID]
}

func (r *memRepo) WithVenueQueue(ctx context.Context, venueID uuid.UUID, fn func(q Queue) error) error {
	lock := r.venueLock(venueID)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	if !r.venues[venueID] {
		r.mu.Unlock()
		return ErrVenueNotFound
	}
	staged := make(map[uuid.UUID]Entry, len(r.entries))
	for id, e := range r.entries {
		staged[id] = e
	}
	r.mu.Unlock()

	q := &memQueue{repo: r, venueID: venueID, staged: staged}
	if err := fn(q); err != nil {
		return err // staged copy discarded, nothing committed
	}

	r.mu.Lock()
	r.entries = staged
	r.mu.Unlock()
	return nil
}

func (r *memRepo) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &e, nil
}

func (r *memRepo) ListVenueEntries(ctx context.Context, venueID uuid.UUID, statuses ...Status) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if e.VenueID != venueID {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, s := range statuses {
				if e.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *memRepo) ListUserEntries(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memQueue struct {
	repo    *memRepo
	venueID uuid.UUID
	staged  map[uuid.UUID]Entry
}

func (q *memQueue) Create(entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	q.repo.mu.Lock()
	q.repo.seq++
	// creation sequence stands in for created_at ordering
	entry.CreatedAt = time.Unix(int64(q.repo.seq), 0)
	q.repo.mu.Unlock()
	q.staged[entry.ID] = *entry
	return nil
}

func (q *memQueue) Get(id uuid.UUID) (*Entry, error) {
	e, ok := q.staged[id]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &e, nil
}

func (q *memQueue) Save(entry *Entry) error {
	if q.repo.failSave != nil {
		return q.repo.failSave
	}
	q.staged[entry.ID] = *entry
	return nil
}

func (q *memQueue) HasActive(userID uuid.UUID) (bool, error) {
	for _, e := range q.staged {
		if e.UserID == userID && e.VenueID == q.venueID && e.Status.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (q *memQueue) CountWaiting() (int, error) {
	count := 0
	for _, e := range q.staged {
		if e.VenueID == q.venueID && e.Status == StatusWaiting {
			count++
		}
	}
	return count, nil
}

func (q *memQueue) ListWaiting() ([]Entry, error) {
	var out []Entry
	for _, e := range q.staged {
		if e.VenueID == q.venueID && e.Status == StatusWaiting {
			out = append(out, e)
		}
	}
	// order by position asc, created_at asc (insertion order fallback)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if less(out[j], out[i]) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func less(a, b Entry) bool {
	ap, bp := posOrMax(a), posOrMax(b)
	if ap != bp {
		return ap < bp
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func posOrMax(e Entry) int {
	if e.Position == nil {
		return 1 << 30
	}
	return *e.Position
}

// --- Mock VenueDirectory ---

type mockDirectory struct {
	venues map[uuid.UUID]VenueInfo
}

func (d *mockDirectory) GetVenue(ctx context.Context, venueID uuid.UUID) (*VenueInfo, error) {
	v, ok := d.venues[venueID]
	if !ok {
		return nil, ErrVenueNotFound
	}
	return &v, nil
}

// --- Mock Notifier ---

type mockNotifier struct {
	mu   sync.Mutex
	sent []QueueNotification
}

func (n *mockNotifier) Notify(ctx context.Context, notification QueueNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *mockNotifier) all() []QueueNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]QueueNotification, len(n.sent))
	copy(out, n.sent)
	return out
}

func (n *mockNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}

// --- Fixture ---

type fixture struct {
	repo     *memRepo
	notifier *mockNotifier
	service  Service
	venueID  uuid.UUID
	ownerID  uuid.UUID
}

func newFixture(t *testing.T, avgServiceTime int) *fixture {
	t.Helper()
	venueID := uuid.New()
	ownerID := uuid.New()
	repo := newMemRepo(venueID)
	notifier := &mockNotifier{}
	directory := &mockDirectory{venues: map[uuid.UUID]VenueInfo{
		venueID: {ID: venueID, OwnerID: ownerID, AvgServiceTime: avgServiceTime},
	}}
	return &fixture{
		repo:     repo,
		notifier: notifier,
		service:  NewService(repo, directory, notifier, nil),
		venueID:  venueID,
		ownerID:  ownerID,
	}
}

// joinApproved creates a customer entry and approves it, returning the entry
func (f *fixture) joinApproved(t *testing.T, userID uuid.UUID) *Entry {
	t.Helper()
	entry, err := f.service.Join(context.Background(), f.venueID, userID)
	require.NoError(t, err)
	approved, err := f.service.Approve(context.Background(), entry.ID, f.ownerID)
	require.NoError(t, err)
	return approved
}

// assertContiguous verifies the waiting positions form 1..N with no gaps or
// duplicates
func (f *fixture) assertContiguous(t *testing.T) {
	t.Helper()
	waiting, err := f.repo.ListVenueEntries(context.Background(), f.venueID, StatusWaiting)
	require.NoError(t, err)
	seen := make(map[int]bool)
	for _, e := range waiting {
		require.NotNil(t, e.Position, "waiting entry must have a position")
		assert.False(t, seen[*e.Position], "duplicate position %d", *e.Position)
		seen[*e.Position] = true
		assert.GreaterOrEqual(t, *e.Position, 1)
		assert.LessOrEqual(t, *e.Position, len(waiting))
	}
}

// --- Tests ---

func TestJoin_CreatesPendingEntry(t *testing.T) {
	f := newFixture(t, 10)
	userID := uuid.New()

	entry, err := f.service.Join(context.Background(), f.venueID, userID)

	require.NoError(t, err)
	assert.Equal(t, StatusPending, entry.Status)
	assert.Nil(t, entry.Position)
	assert.Nil(t, entry.EstimatedWait)
	assert.Equal(t, userID, entry.UserID)
	assert.Equal(t, f.venueID, entry.VenueID)
}

func TestJoin_VenueNotFound(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.service.Join(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestJoin_DuplicateActiveEntry_Conflict(t *testing.T) {
	f := newFixture(t, 10)
	userID := uuid.New()

	_, err := f.service.Join(context.Background(), f.venueID, userID)
	require.NoError(t, err)

	_, err = f.service.Join(context.Background(), f.venueID, userID)
	assert.ErrorIs(t, err, ErrAlreadyQueued)
}

func TestJoin_AllowedAfterTerminalEntry(t *testing.T) {
	f := newFixture(t, 10)
	userID := uuid.New()

	entry, err := f.service.Join(context.Background(), f.venueID, userID)
	require.NoError(t, err)
	_, err = f.service.Cancel(context.Background(), entry.ID, userID)
	require.NoError(t, err)

	// terminal entry no longer occupies the active slot
	_, err = f.service.Join(context.Background(), f.venueID, userID)
	assert.NoError(t, err)
}

func TestApprove_AssignsTailPositionAndEstimate(t *testing.T) {
	f := newFixture(t, 10)

	a := f.joinApproved(t, uuid.New())
	require.NotNil(t, a.Position)
	assert.Equal(t, 1, *a.Position)
	assert.Equal(t, 0, *a.EstimatedWait)

	b := f.joinApproved(t, uuid.New())
	assert.Equal(t, 2, *b.Position)
	assert.Equal(t, 10, *b.EstimatedWait)

	c := f.joinApproved(t, uuid.New())
	assert.Equal(t, 3, *c.Position)
	assert.Equal(t, 20, *c.EstimatedWait)

	f.assertContiguous(t)
}

func TestApprove_DefaultServiceTimeFallback(t *testing.T) {
	f := newFixture(t, 0) // venue never configured avg_service_time

	f.joinApproved(t, uuid.New())
	b := f.joinApproved(t, uuid.New())

	assert.Equal(t, DefaultServiceTime, *b.EstimatedWait)
}

func TestApprove_WrongStaff_Forbidden(t *testing.T) {
	f := newFixture(t, 10)
	entry, err := f.service.Join(context.Background(), f.venueID, uuid.New())
	require.NoError(t, err)

	_, err = f.service.Approve(context.Background(), entry.ID, uuid.New())

	assert.ErrorIs(t, err, ErrNotVenueOwner)
}

func TestApprove_NonPending_InvalidTransition(t *testing.T) {
	f := newFixture(t, 10)
	approved := f.joinApproved(t, uuid.New())

	_, err := f.service.Approve(context.Background(), approved.ID, f.ownerID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApprove_EmitsPositionNotification(t *testing.T) {
	f := newFixture(t, 10)
	userID := uuid.New()

	f.joinApproved(t, userID)

	sent := f.notifier.all()
	require.Len(t, sent, 1)
	assert.Equal(t, userID, sent[0].UserID)
	assert.Equal(t, StatusWaiting, sent[0].Status)
	assert.Contains(t, sent[0].Message, "position 1")
}

func TestReject_PendingOnly(t *testing.T) {
	f := newFixture(t, 10)

	// rejecting a waiting entry is not allowed
	approved := f.joinApproved(t, uuid.New())
	_, err := f.service.Reject(context.Background(), approved.ID, f.ownerID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// rejecting a pending entry clears position and estimate
	pending, err := f.service.Join(context.Background(), f.venueID, uuid.New())
	require.NoError(t, err)
	rejected, err := f.service.Reject(context.Background(), pending.ID, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Nil(t, rejected.Position)
	assert.Nil(t, rejected.EstimatedWait)
}

func TestCancel_WaitingEntry_RenumbersQueue(t *testing.T) {
	f := newFixture(t, 10)
	userA := uuid.New()
	userB := uuid.New()

	a := f.joinApproved(t, userA) // position 1, wait 0
	b := f.joinApproved(t, userB) // position 2, wait 10
	require.Equal(t, 2, *b.Position)
	f.notifier.reset()

	cancelled, err := f.service.Cancel(context.Background(), a.ID, userA)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.Position)
	assert.Nil(t, cancelled.EstimatedWait)

	// B moved up to position 1 with zero estimated wait
	updated, err := f.repo.GetEntry(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Position)
	assert.Equal(t, 1, *updated.Position)
	assert.Equal(t, 0, *updated.EstimatedWait)
	f.assertContiguous(t)

	// B got a position-changed notification, A got the cancellation
	sent := f.notifier.all()
	require.Len(t, sent, 2)
	assert.Equal(t, userA, sent[0].UserID)
	assert.Equal(t, StatusCancelled, sent[0].Status)
	assert.Equal(t, userB, sent[1].UserID)
	assert.Contains(t, sent[1].Message, "position 1")
}

func TestCancel_PendingEntry_NoRenumber(t *testing.T) {
	f := newFixture(t, 10)
	userID := uuid.New()
	w := f.joinApproved(t, uuid.New())

	pending, err := f.service.Join(context.Background(), f.venueID, userID)
	require.NoError(t, err)
	f.notifier.reset()

	_, err = f.service.Cancel(context.Background(), pending.ID, userID)
	require.NoError(t, err)

	// waiting entry untouched, only the cancellation notice went out
	unchanged, err := f.repo.GetEntry(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, *unchanged.Position)
	assert.Len(t, f.notifier.all(), 1)
}

func TestCancel_NotOwner_Forbidden(t *testing.T) {
	f := newFixture(t, 10)
	entry, err := f.service.Join(context.Background(), f.venueID, uuid.New())
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), entry.ID, uuid.New())

	assert.ErrorIs(t, err, ErrNotEntryOwner)
}

func TestCancel_TerminalEntry_InvalidTransition(t *testing.T) {
	f := newFixture(t, 10)
	userID := uuid.New()
	entry, err := f.service.Join(context.Background(), f.venueID, userID)
	require.NoError(t, err)
	_, err = f.service.Cancel(context.Background(), entry.ID, userID)
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), entry.ID, userID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSeat_RenumbersRemainingQueue(t *testing.T) {
	f := newFixture(t, 10)
	a := f.joinApproved(t, uuid.New())
	b := f.joinApproved(t, uuid.New())
	c := f.joinApproved(t, uuid.New())
	f.notifier.reset()

	seated, err := f.service.Seat(context.Background(), a.ID, f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, StatusSeated, seated.Status)

	updatedB, _ := f.repo.GetEntry(context.Background(), b.ID)
	updatedC, _ := f.repo.GetEntry(context.Background(), c.ID)
	assert.Equal(t, 1, *updatedB.Position)
	assert.Equal(t, 0, *updatedB.EstimatedWait)
	assert.Equal(t, 2, *updatedC.Position)
	assert.Equal(t, 10, *updatedC.EstimatedWait)
	f.assertContiguous(t)

	// seating notice + two position changes
	assert.Len(t, f.notifier.all(), 3)
}

func TestSeat_PendingEntry_InvalidTransition(t *testing.T) {
	f := newFixture(t, 10)
	pending, err := f.service.Join(context.Background(), f.venueID, uuid.New())
	require.NoError(t, err)

	_, err = f.service.Seat(context.Background(), pending.ID, f.ownerID)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRenumber_Idempotent(t *testing.T) {
	f := newFixture(t, 10)
	f.joinApproved(t, uuid.New())
	f.joinApproved(t, uuid.New())
	f.joinApproved(t, uuid.New())

	svc := f.service.(*service)

	var firstMoves, secondMoves []positionChange
	err := f.repo.WithVenueQueue(context.Background(), f.venueID, func(q Queue) error {
		var err error
		firstMoves, err = svc.renumber(q, 10)
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, firstMoves, "already-contiguous queue should not move")

	err = f.repo.WithVenueQueue(context.Background(), f.venueID, func(q Queue) error {
		var err error
		secondMoves, err = svc.renumber(q, 10)
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, secondMoves)
}

func TestConcurrentApprovals_DistinctPositions(t *testing.T) {
	f := newFixture(t, 10)
	e1, err := f.service.Join(context.Background(), f.venueID, uuid.New())
	require.NoError(t, err)
	e2, err := f.service.Join(context.Background(), f.venueID, uuid.New())
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	for _, id := range []uuid.UUID{e1.ID, e2.ID} {
		go func(entryID uuid.UUID) {
			defer wg.Done()
			_, err := f.service.Approve(context.Background(), entryID, f.ownerID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	r1, _ := f.repo.GetEntry(context.Background(), e1.ID)
	r2, _ := f.repo.GetEntry(context.Background(), e2.ID)
	require.NotNil(t, r1.Position)
	require.NotNil(t, r2.Position)
	positions := map[int]bool{*r1.Position: true, *r2.Position: true}
	assert.True(t, positions[1] && positions[2], "expected positions {1,2}, got %d and %d", *r1.Position, *r2.Position)
	f.assertContiguous(t)
}

func TestStorageFailure_RollsBackWholeOperation(t *testing.T) {
	f := newFixture(t, 10)
	entry, err := f.service.Join(context.Background(), f.venueID, uuid.New())
	require.NoError(t, err)

	f.repo.failSave = assert.AnError
	_, err = f.service.Approve(context.Background(), entry.ID, f.ownerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)

	// entry still pending, nothing committed, nothing notified
	f.repo.failSave = nil
	unchanged, err := f.repo.GetEntry(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, unchanged.Status)
	assert.Nil(t, unchanged.Position)
	assert.Empty(t, f.notifier.all())
}

func TestVenueQueue_RequiresOwnership(t *testing.T) {
	f := newFixture(t, 10)
	f.joinApproved(t, uuid.New())

	_, err := f.service.VenueQueue(context.Background(), f.venueID, uuid.New())
	assert.ErrorIs(t, err, ErrNotVenueOwner)

	entries, err := f.service.VenueQueue(context.Background(), f.venueID, f.ownerID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
