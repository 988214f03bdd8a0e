//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/infra/memstore"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"
	"academy-booking/internal/usecase/shared"
	"academy-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type recordedEvents struct {
	mu     sync.Mutex
	events []shared.Event
}

func (r *recordedEvents) Publish(_ context.Context, events ...shared.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *recordedEvents) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Topic())
	}
	return out
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
	changed  int
	noop     int
}

func (m *countingMetrics) ObserveBooking(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

func (m *countingMetrics) ObserveCancellation(changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if changed {
		m.changed++
	} else {
		m.noop++
	}
}

type EngineTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memstore.Store
	events   *recordedEvents
	metrics  *countingMetrics
	clock    *clock.MockClock
	engine   commands.ReservationCommands
	sessions commands.SessionCommands
	bookings queries.BookingQueries
	admin    shared.Actor
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.events = &recordedEvents{}
	s.metrics = &countingMetrics{outcomes: map[string]int{}}
	s.clock = clock.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

	uow := s.store.UnitOfWork()
	s.engine = commands.NewReservationCommands(uow, s.events, s.metrics, s.clock)
	s.sessions = commands.NewSessionCommands(uow, s.events, s.clock)
	s.bookings = queries.NewBookingQueries(memstore.NewBookingReadStore(s.store), memstore.NewSessionReadStore(s.store))
	s.admin = shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) seedMember(b *builder.UserBuilder) (*user.User, shared.Actor) {
	u, err := b.BuildDomain()
	s.Require().NoError(err)
	err = s.store.UnitOfWork().Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, u)
	})
	s.Require().NoError(err)
	return u, shared.Actor{ID: u.ID(), Role: u.Role()}
}

func (s *EngineTestSuite) seedSession(capacity int) uuid.UUID {
	b := builder.NewSessionBuilder().WithCapacity(capacity)
	created, err := s.sessions.Create(s.ctx, s.admin, commands.CreateSessionInput{
		Title:    b.Title,
		Audience: b.Audience,
		StartsAt: b.StartsAt,
		EndsAt:   b.StartsAt.Add(b.Duration),
		Location: b.Location,
		Capacity: capacity,
	})
	s.Require().NoError(err)
	return created.ID()
}

func (s *EngineTestSuite) book(actor shared.Actor, sessionID uuid.UUID, player string) (*commands.BookResult, error) {
	return s.engine.Book(s.ctx, actor, commands.BookRequest{SessionID: sessionID, MemberID: actor.ID, Player: player})
}

func (s *EngineTestSuite) TestConcurrentBookingsNeverExceedCapacity() {
	const capacity, contenders = 7, 24
	sessionID := s.seedSession(capacity)

	actors := make([]shared.Actor, contenders)
	names := make([]string, contenders)
	for i := range actors {
		names[i] = fmt.Sprintf("Player %02d", i)
		_, actors[i] = s.seedMember(builder.NewUserBuilder().
			WithName(names[i]).
			WithPhone(fmt.Sprintf("050-00000%02d", i)))
	}

	var confirmed, full atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range actors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := s.book(actors[i], sessionID, names[i])
			switch {
			case err == nil:
				confirmed.Add(1)
			case assert.ErrorIs(s.T(), err, shared.ErrCapacityExceeded):
				full.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	s.Equal(int32(capacity), confirmed.Load())
	s.Equal(int32(contenders-capacity), full.Load())

	roster, err := s.bookings.Roster(s.ctx, s.admin, sessionID)
	s.Require().NoError(err)
	s.Len(roster, capacity)
	s.Equal(capacity, s.metrics.outcomes[commands.OutcomeConfirmed])
	s.Equal(contenders-capacity, s.metrics.outcomes[commands.OutcomeFull])
}

func (s *EngineTestSuite) TestConcurrentResubmissionBooksOnce() {
	sessionID := s.seedSession(7)
	_, actor := s.seedMember(builder.NewUserBuilder())

	var confirmed, duplicate atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.book(actor, sessionID, "Dana Levi")
			switch {
			case err == nil:
				confirmed.Add(1)
			case assert.ErrorIs(s.T(), err, shared.ErrDuplicatePlayer):
				duplicate.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), confirmed.Load())
	s.Equal(int32(9), duplicate.Load())
}

func (s *EngineTestSuite) TestBook() {
	s.Run("result carries occupancy and denormalized session fields", func() {
		sessionID := s.seedSession(3)
		_, actor := s.seedMember(builder.NewUserBuilder())

		result, err := s.book(actor, sessionID, "  dana   LEVI ")
		s.Require().NoError(err)
		s.Equal(1, result.Booked)
		s.Equal(2, result.SpotsLeft)
		s.Equal("Dana Levi", result.Booking.Player().String(), "label uses the stored spelling")
		s.Equal("Junior footwork", result.Booking.SessionTitle())
		s.Nil(result.Booking.ChildID())
		s.Contains(s.events.topics(), "booking.created")
	})

	s.Run("a child takes their own spot", func() {
		sessionID := s.seedSession(7)
		parent, actor := s.seedMember(builder.NewUserBuilder().WithPhone("052-7654321").WithChildren("Noa Levi"))

		_, err := s.book(actor, sessionID, "Dana Levi")
		s.Require().NoError(err)
		result, err := s.book(actor, sessionID, "noa levi")
		s.Require().NoError(err)
		s.Require().NotNil(result.Booking.ChildID())
		s.Equal(parent.Children()[0].ID, *result.Booking.ChildID())
		s.Equal(2, result.Booked)
	})

	s.Run("duplicate is reported before capacity on a full session", func() {
		sessionID := s.seedSession(1)
		_, actor := s.seedMember(builder.NewUserBuilder().WithPhone("053-1112222"))

		_, err := s.book(actor, sessionID, "Dana Levi")
		s.Require().NoError(err)
		_, err = s.book(actor, sessionID, "Dana Levi")
		s.ErrorIs(err, shared.ErrDuplicatePlayer)
	})

	s.Run("rejections", func() {
		sessionID := s.seedSession(7)
		_, actor := s.seedMember(builder.NewUserBuilder().WithPhone("054-3334444"))
		_, other := s.seedMember(builder.NewUserBuilder().WithName("Avi Cohen").WithPhone("054-5556666"))

		_, err := s.book(actor, uuid.New(), "Dana Levi")
		s.ErrorIs(err, shared.ErrSessionNotFound)
		s.False(errs.Is(err, shared.ErrMemberNotFound))
		s.True(errs.IsKind(err, errs.ErrNotFound))

		_, err = s.book(actor, sessionID, "Somebody Else")
		s.ErrorIs(err, shared.ErrPlayerNotRegistered)

		_, err = s.engine.Book(s.ctx, actor, commands.BookRequest{SessionID: sessionID, MemberID: other.ID, Player: "Avi Cohen"})
		s.ErrorIs(err, shared.ErrPermissionDenied)

		_, err = s.book(actor, sessionID, "   ")
		s.True(errs.Is(err, shared.ErrInvalidInput))

		// an admin may book on a member's behalf
		_, err = s.engine.Book(s.ctx, s.admin, commands.BookRequest{SessionID: sessionID, MemberID: other.ID, Player: "Avi Cohen"})
		s.NoError(err)
	})

	s.Run("cancelled context is not reported as a store failure", func() {
		sessionID := s.seedSession(7)
		_, actor := s.seedMember(builder.NewUserBuilder().WithPhone("055-7778888"))

		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.engine.Book(ctx, actor, commands.BookRequest{SessionID: sessionID, MemberID: actor.ID, Player: "Dana Levi"})
		s.ErrorIs(err, context.Canceled)
		s.False(errs.Is(err, shared.ErrTransientStore))
	})
}

func (s *EngineTestSuite) TestCancel() {
	sessionID := s.seedSession(1)
	_, actor := s.seedMember(builder.NewUserBuilder())
	_, stranger := s.seedMember(builder.NewUserBuilder().WithName("Avi Cohen").WithPhone("058-1234567"))

	result, err := s.book(actor, sessionID, "Dana Levi")
	s.Require().NoError(err)
	id := result.Booking.ID()

	s.Run("only the owner or an admin may cancel", func() {
		s.ErrorIs(s.engine.Cancel(s.ctx, stranger, id), shared.ErrPermissionDenied)
	})

	s.Run("cancel frees the spot", func() {
		s.Require().NoError(s.engine.Cancel(s.ctx, actor, id))

		view, err := s.bookings.Get(s.ctx, actor, id)
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled.String(), view.Status)
		s.NotNil(view.CancelledAt)

		_, err = s.book(actor, sessionID, "Dana Levi")
		s.NoError(err, "the same player can book again after cancelling")
	})

	s.Run("cancel is idempotent", func() {
		before := len(s.events.topics())
		s.NoError(s.engine.Cancel(s.ctx, actor, id))
		s.NoError(s.engine.Cancel(s.ctx, actor, uuid.New()))
		s.Len(s.events.topics(), before, "no-op cancels publish nothing")
		s.Equal(1, s.metrics.changed)
		s.Equal(2, s.metrics.noop)
	})
}

func (s *EngineTestSuite) TestToggleAttendance() {
	sessionID := s.seedSession(7)
	_, actor := s.seedMember(builder.NewUserBuilder())
	result, err := s.book(actor, sessionID, "Dana Levi")
	s.Require().NoError(err)
	id := result.Booking.ID()

	_, err = s.engine.ToggleAttendance(s.ctx, actor, id)
	s.ErrorIs(err, shared.ErrPermissionDenied)

	toggled, err := s.engine.ToggleAttendance(s.ctx, s.admin, id)
	s.Require().NoError(err)
	s.True(toggled.Attended())

	_, err = s.engine.ToggleAttendance(s.ctx, s.admin, uuid.New())
	s.ErrorIs(err, shared.ErrBookingNotFound)

	s.Require().NoError(s.engine.Cancel(s.ctx, actor, id))
	_, err = s.engine.ToggleAttendance(s.ctx, s.admin, id)
	s.ErrorIs(err, booking.ErrNotConfirmed)
}

func (s *EngineTestSuite) TestSessionEditKeepsBookingSnapshot() {
	sessionID := s.seedSession(7)
	_, actor := s.seedMember(builder.NewUserBuilder())
	result, err := s.book(actor, sessionID, "Dana Levi")
	s.Require().NoError(err)
	title, startsAt := result.Booking.SessionTitle(), result.Booking.SessionStartsAt()

	newTitle := "Evening Drills"
	newStart := startsAt.Add(24 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	updated, err := s.sessions.Update(s.ctx, s.admin, sessionID, commands.UpdateSessionInput{
		Title:    &newTitle,
		StartsAt: &newStart,
		EndsAt:   &newEnd,
	})
	s.Require().NoError(err)
	s.Equal(newTitle, updated.Title())

	view, err := s.bookings.Get(s.ctx, actor, result.Booking.ID())
	s.Require().NoError(err)
	s.Equal(title, view.SessionTitle)
	s.True(startsAt.Equal(view.SessionStartsAt))

	err = s.store.UnitOfWork().Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		stored, err := tx.Bookings().LockByID(ctx, result.Booking.ID())
		if err != nil {
			return err
		}
		s.Equal(title, stored.SessionTitle())
		s.True(startsAt.Equal(stored.SessionStartsAt()))
		return nil
	})
	s.Require().NoError(err)

	// new bookings take the edited details
	_, other := s.seedMember(builder.NewUserBuilder().WithName("Avi Cohen").WithPhone("058-7654321"))
	fresh, err := s.book(other, sessionID, "Avi Cohen")
	s.Require().NoError(err)
	s.Equal(newTitle, fresh.Booking.SessionTitle())
	s.True(newStart.Equal(fresh.Booking.SessionStartsAt()))
}

func (s *EngineTestSuite) TestDeleteSession() {
	sessionID := s.seedSession(7)
	_, actor := s.seedMember(builder.NewUserBuilder())
	result, err := s.book(actor, sessionID, "Dana Levi")
	s.Require().NoError(err)

	s.ErrorIs(s.sessions.Delete(s.ctx, actor, sessionID, true), shared.ErrPermissionDenied)
	s.ErrorIs(s.sessions.Delete(s.ctx, s.admin, sessionID, false), shared.ErrSessionHasBookings)

	s.Require().NoError(s.sessions.Delete(s.ctx, s.admin, sessionID, true))

	view, err := s.bookings.Get(s.ctx, actor, result.Booking.ID())
	s.Require().NoError(err)
	s.Equal("cancelled", view.Status, "cascade keeps the booking record")

	_, err = s.book(actor, sessionID, "Dana Levi")
	s.ErrorIs(err, shared.ErrSessionNotFound)
	s.ErrorIs(s.sessions.Delete(s.ctx, s.admin, sessionID, false), shared.ErrSessionNotFound)

	topics := s.events.topics()
	require.GreaterOrEqual(s.T(), len(topics), 2)
	s.Equal([]string{"booking.cancelled", "session.deleted"}, topics[len(topics)-2:])
}
