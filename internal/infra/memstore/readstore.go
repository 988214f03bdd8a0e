package memstore

import (
	"context"
	"sort"
	"time"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/session"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/ptr"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// SessionReadStore implements queries.SessionReadStore.
type SessionReadStore struct{ s *Store }

func NewSessionReadStore(s *Store) *SessionReadStore { return &SessionReadStore{s: s} }

func (r *SessionReadStore) List(_ context.Context, filter queries.SessionFilter) ([]*queries.SessionView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*queries.SessionView{}
	for _, sess := range r.s.sessions {
		if filter.Audience != nil && string(sess.Audience()) != *filter.Audience {
			continue
		}
		if filter.From != nil && sess.StartsAt().Before(*filter.From) {
			continue
		}
		if filter.To != nil && !sess.StartsAt().Before(*filter.To) {
			continue
		}
		result = append(result, r.s.sessionView(sess))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartsAt.Equal(result[j].StartsAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].StartsAt.Before(result[j].StartsAt)
	})
	return result, nil
}

func (r *SessionReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.SessionView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sess, ok := r.s.sessions[id]
	if !ok {
		return nil, notFound("session not found")
	}
	return r.s.sessionView(sess), nil
}

// sessionView must be called with mu held.
func (s *Store) sessionView(sess *session.Session) *queries.SessionView {
	booked := 0
	for _, b := range s.bookings {
		if b.SessionID() == sess.ID() && b.IsConfirmed() {
			booked++
		}
	}
	return &queries.SessionView{
		ID:        sess.ID(),
		Title:     sess.Title(),
		Audience:  string(sess.Audience()),
		StartsAt:  sess.StartsAt(),
		EndsAt:    sess.EndsAt(),
		Location:  sess.Location(),
		Capacity:  sess.Capacity(),
		Booked:    booked,
		SpotsLeft: max(sess.Capacity()-booked, 0),
		CreatedAt: sess.CreatedAt(),
		UpdatedAt: sess.UpdatedAt(),
	}
}

// BookingReadStore implements queries.BookingReadStore.
type BookingReadStore struct{ s *Store }

func NewBookingReadStore(s *Store) *BookingReadStore { return &BookingReadStore{s: s} }

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return r.s.bookingView(b), nil
}

func (r *BookingReadStore) ListByMember(_ context.Context, memberID uuid.UUID, includeCancelled bool) ([]*queries.BookingView, error) {
	return r.list(func(b *booking.Booking) bool {
		return b.MemberID() == memberID && (includeCancelled || b.IsConfirmed())
	}, func(a, b *queries.BookingView) bool {
		if a.SessionStartsAt.Equal(b.SessionStartsAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.SessionStartsAt.Before(b.SessionStartsAt)
	}), nil
}

func (r *BookingReadStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]*queries.BookingView, error) {
	return r.list(func(b *booking.Booking) bool {
		return b.SessionID() == sessionID
	}, func(a, b *queries.BookingView) bool {
		if a.Status != b.Status {
			return a.Status < b.Status
		}
		return a.CreatedAt.Before(b.CreatedAt)
	}), nil
}

func (r *BookingReadStore) list(keep func(*booking.Booking) bool, less func(a, b *queries.BookingView) bool) []*queries.BookingView {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*queries.BookingView{}
	for _, b := range r.s.bookings {
		if keep(b) {
			result = append(result, r.s.bookingView(b))
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func (s *Store) bookingView(b *booking.Booking) *queries.BookingView {
	view := &queries.BookingView{
		ID:              b.ID(),
		SessionID:       b.SessionID(),
		MemberID:        b.MemberID(),
		Player:          b.Player().String(),
		ChildID:         ptr.Clone(b.ChildID()),
		Status:          b.Status().String(),
		Attended:        b.Attended(),
		SessionTitle:    b.SessionTitle(),
		SessionStartsAt: b.SessionStartsAt(),
		CreatedAt:       b.CreatedAt(),
		CancelledAt:     ptr.Clone(b.CancelledAt()),
	}
	if u, ok := s.users[b.MemberID()]; ok {
		view.MemberName = u.Name().String()
	}
	return view
}

// AnnouncementReadStore implements queries.AnnouncementReadStore.
type AnnouncementReadStore struct{ s *Store }

func NewAnnouncementReadStore(s *Store) *AnnouncementReadStore { return &AnnouncementReadStore{s: s} }

func (r *AnnouncementReadStore) ListActive(_ context.Context, now time.Time) ([]*queries.AnnouncementView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*queries.AnnouncementView{}
	for i := len(r.s.announcements) - 1; i >= 0; i-- {
		a := r.s.announcements[i]
		if !a.ActiveAt(now) {
			continue
		}
		result = append(result, &queries.AnnouncementView{
			ID:        a.ID(),
			Title:     a.Title(),
			Body:      a.Body(),
			Audience:  string(a.Audience()),
			AuthorID:  a.AuthorID(),
			CreatedAt: a.CreatedAt(),
			ExpiresAt: a.ExpiresAt(),
		})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// MemberReadStore implements queries.MemberReadStore.
type MemberReadStore struct{ s *Store }

func NewMemberReadStore(s *Store) *MemberReadStore { return &MemberReadStore{s: s} }

func (r *MemberReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.MemberView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("member not found")
	}
	return memberView(u), nil
}

func (r *MemberReadStore) List(_ context.Context) ([]*queries.MemberView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := []*queries.MemberView{}
	for _, u := range r.s.users {
		if u.Role().IsAdmin() {
			continue
		}
		result = append(result, memberView(u))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func memberView(u *user.User) *queries.MemberView {
	view := &queries.MemberView{
		ID:        u.ID(),
		Name:      u.Name().String(),
		Phone:     u.Phone().String(),
		Role:      u.Role().String(),
		Children:  []queries.ChildView{},
		CreatedAt: u.CreatedAt(),
	}
	for _, c := range u.Children() {
		view.Children = append(view.Children, queries.ChildView{
			ID:         c.ID,
			Name:       c.Name.String(),
			Age:        ptr.Clone(c.Age),
			SkillLevel: c.SkillLevel,
		})
	}
	if sub := u.Subscription(); sub != nil {
		planID, started := sub.PlanID, sub.StartedAt
		view.PlanID = &planID
		view.PlanPaid = sub.Paid
		view.PlanStartedAt = &started
	}
	return view
}

// SettingsReadStore implements queries.SettingsReadStore.
type SettingsReadStore struct{ s *Store }

func NewSettingsReadStore(s *Store) *SettingsReadStore { return &SettingsReadStore{s: s} }

func (r *SettingsReadStore) Get(_ context.Context) (*queries.SettingsView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.settings == nil {
		return &queries.SettingsView{Name: academy.DefaultName}, nil
	}
	updated := r.s.settings.UpdatedAt
	return &queries.SettingsView{
		Name:             r.s.settings.Name,
		CustomBackground: r.s.settings.CustomBackground,
		UpdatedAt:        &updated,
	}, nil
}
