package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ecoquest/internal/domain"
)

// Result is the committed outcome of one allowed attempt.
type Result struct {
	Points int
	Count  int
	Limit  int
	Badges []string
}

// Remaining returns how many uses of the kind are left today.
func (r *Result) Remaining() int {
	if r.Limit < r.Count {
		return 0
	}
	return r.Limit - r.Count
}

type inflightKey struct {
	identifier string
	kind       domain.ActionKind
}

// session holds one identifier's in-memory daily state. Guest points live
// only here; for real identifiers the database stays authoritative.
type session struct {
	counts      map[domain.ActionKind]int
	day         string
	guestPoints int
}

// Ledger decides whether a requested action may proceed and, if so, commits
// the daily counter increment and the point reward as a two-phase operation:
// tentative local apply, remote confirmation, then commit or compensating
// rollback.
type Ledger struct {
	users  domain.UserRepository
	store  SnapshotStore
	logger zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	inflight map[inflightKey]struct{}
	sessions map[string]*session
}

// Options configures a Ledger.
type Options struct {
	Users  domain.UserRepository
	Store  SnapshotStore
	Logger zerolog.Logger
	// Now overrides the clock; nil means time.Now. Day rollover uses the
	// local time zone of the returned instant.
	Now func() time.Time
}

// New constructs a Ledger.
func New(opts Options) *Ledger {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		users:    opts.Users,
		store:    opts.Store,
		logger:   opts.Logger,
		now:      now,
		inflight: make(map[inflightKey]struct{}),
		sessions: make(map[string]*session),
	}
}

// DayFormat is the calendar-date key used for rollover and snapshots.
const DayFormat = "2006-01-02"

// Today returns the current calendar date key.
func (l *Ledger) Today() string {
	return l.now().Format(DayFormat)
}

// Attempt runs one rate-limited action for the identifier. The do callback
// performs the upstream fetch; it runs only after the quota check passes and
// the tentative counter increment is in place. If do or the remote points
// confirmation fails, the increment is rolled back and points stay unchanged.
//
// Attempts for the same (identifier, kind) pair are serialized: a second call
// while one is outstanding fails with domain.ErrAttemptInFlight. Attempts for
// different kinds proceed independently.
func (l *Ledger) Attempt(ctx context.Context, identifier string, kind domain.ActionKind, do func(context.Context) error) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unrecognized action kind %q", kind)
	}
	if identifier == "" {
		identifier = domain.GuestIdentifier
	}

	key := inflightKey{identifier: identifier, kind: kind}
	l.mu.Lock()
	if _, busy := l.inflight[key]; busy {
		l.mu.Unlock()
		return nil, domain.ErrAttemptInFlight
	}
	l.inflight[key] = struct{}{}
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		delete(l.inflight, key)
		l.mu.Unlock()
	}()

	record, err := l.loadRecord(ctx, identifier)
	if err != nil {
		return nil, err
	}
	limit := record.LimitFor(kind)

	// Phase 1: quota check and tentative increment.
	l.mu.Lock()
	sess := l.sessionLocked(ctx, identifier)
	l.rolloverLocked(identifier, sess)
	if sess.counts[kind] >= limit {
		l.mu.Unlock()
		return nil, &domain.QuotaExceededError{Kind: kind, Limit: limit}
	}
	sess.counts[kind]++
	l.mu.Unlock()

	// Phase 2: upstream fetch, then remote points confirmation.
	err = do(ctx)
	if err == nil && identifier != domain.GuestIdentifier {
		record, err = l.confirm(ctx, identifier, kind)
	}
	if err != nil {
		l.rollback(ctx, identifier, kind)
		return nil, err
	}

	// Commit.
	l.mu.Lock()
	if identifier == domain.GuestIdentifier {
		sess.guestPoints += kind.Reward()
		record.Points = sess.guestPoints
	}
	count := sess.counts[kind]
	day := sess.day
	counts := copyCounts(sess.counts)
	l.mu.Unlock()

	l.persist(ctx, identifier, day, counts)

	return &Result{
		Points: record.Points,
		Count:  count,
		Limit:  limit,
		Badges: record.Badges(),
	}, nil
}

// Counts returns a copy of today's counters for the identifier, applying
// rollover first so a caller never sees yesterday's numbers.
func (l *Ledger) Counts(ctx context.Context, identifier string) (map[domain.ActionKind]int, string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sess := l.sessionLocked(ctx, identifier)
	l.rolloverLocked(identifier, sess)
	return copyCounts(sess.counts), sess.day
}

// Forget discards the in-memory session for an identifier. Switching
// identifier reloads fresh state for the new one.
func (l *Ledger) Forget(identifier string) {
	l.mu.Lock()
	delete(l.sessions, identifier)
	l.mu.Unlock()
}

func (l *Ledger) loadRecord(ctx context.Context, identifier string) (*domain.UserRecord, error) {
	if identifier == domain.GuestIdentifier {
		return domain.NewUserRecord(identifier), nil
	}
	record, err := l.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", identifier, err)
	}
	return record, nil
}

// confirm records the reward remotely; the returned record is authoritative.
func (l *Ledger) confirm(ctx context.Context, identifier string, kind domain.ActionKind) (*domain.UserRecord, error) {
	record, err := l.users.ApplyPointsDelta(ctx, identifier, kind.Reward())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUpdateFailed, err)
	}
	return record, nil
}

func (l *Ledger) rollback(ctx context.Context, identifier string, kind domain.ActionKind) {
	l.mu.Lock()
	sess, ok := l.sessions[identifier]
	if ok {
		if sess.counts[kind] > 0 {
			sess.counts[kind]--
		}
	}
	var day string
	var counts map[domain.ActionKind]int
	if ok {
		day = sess.day
		counts = copyCounts(sess.counts)
	}
	l.mu.Unlock()
	if ok {
		l.persist(ctx, identifier, day, counts)
	}
}

// sessionLocked returns the session for the identifier, loading any surviving
// snapshot for today on first touch. Callers must hold l.mu.
func (l *Ledger) sessionLocked(ctx context.Context, identifier string) *session {
	if sess, ok := l.sessions[identifier]; ok {
		return sess
	}
	sess := &session{counts: map[domain.ActionKind]int{}, day: l.Today()}
	if l.store != nil {
		if counts, err := l.store.Load(ctx, identifier, sess.day); err != nil {
			l.logger.Warn().Err(err).Str("identifier", identifier).Msg("load ledger snapshot failed")
		} else if counts != nil {
			sess.counts = counts
		}
	}
	l.sessions[identifier] = sess
	return sess
}

// rolloverLocked resets counters when the calendar day has changed. Runs
// before every quota evaluation. Callers must hold l.mu.
func (l *Ledger) rolloverLocked(identifier string, sess *session) {
	today := l.Today()
	if sess.day == today {
		return
	}
	l.logger.Debug().Str("identifier", identifier).Str("from", sess.day).Str("to", today).Msg("ledger day rollover")
	sess.day = today
	sess.counts = map[domain.ActionKind]int{}
}

// persist writes the snapshot and mirrors counts onto the user record.
// Both are best-effort: a persistence failure never undoes a commit.
func (l *Ledger) persist(ctx context.Context, identifier, day string, counts map[domain.ActionKind]int) {
	if l.store != nil {
		if err := l.store.Save(ctx, Snapshot{Identifier: identifier, Day: day, Counts: counts}); err != nil {
			l.logger.Warn().Err(err).Str("identifier", identifier).Msg("save ledger snapshot failed")
		}
	}
	if identifier != domain.GuestIdentifier && l.users != nil {
		if err := l.users.SaveDailyCounts(ctx, identifier, day, counts); err != nil {
			l.logger.Warn().Err(err).Str("identifier", identifier).Msg("mirror daily counts failed")
		}
	}
}

func copyCounts(counts map[domain.ActionKind]int) map[domain.ActionKind]int {
	out := make(map[domain.ActionKind]int, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}
