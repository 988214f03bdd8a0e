//go:build unit

package user_test

import (
	"strings"
	"testing"
	"time"

	"academy-booking/internal/domain/user"
	"academy-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(user.DisplayName{}),
	cmpopts.IgnoreFields(user.Child{}, "ID"),
	cmpopts.EquateEmpty(),
}

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func mustName(t *testing.T, s string) user.DisplayName {
	t.Helper()
	n, err := user.NewDisplayName(s)
	require.NoError(t, err)
	return n
}

func TestUser(t *testing.T) {
	t.Run("member sign-up", func(t *testing.T) {
		name := mustName(t, "  Dana   Levi ")
		phone, err := user.NewPhone("+972 (50) 123-4567")
		require.NoError(t, err)

		actual := user.NewMember(name, phone, now)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Dana Levi", actual.Name().String())
		assert.Equal(t, "+972501234567", actual.Phone().String())
		assert.Equal(t, user.RoleMember, actual.Role())
		assert.Nil(t, actual.Subscription())
		assert.Empty(t, actual.Children())
	})

	t.Run("name validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "simple name OK", mutate: func(b *builder.UserBuilder) { b.WithName("Avi") }},
			{name: "80 characters OK", mutate: func(b *builder.UserBuilder) { b.WithName(strings.Repeat("a", 80)) }},
			{name: "81 characters NG", mutate: func(b *builder.UserBuilder) { b.WithName(strings.Repeat("a", 81)) }, errIs: user.ErrInvalidDisplayName},
			{name: "blank NG", mutate: func(b *builder.UserBuilder) { b.WithName("   ") }, errIs: user.ErrInvalidDisplayName},
		})
	})

	t.Run("phone validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "local format OK", mutate: func(b *builder.UserBuilder) { b.WithPhone("050-1234567") }},
			{name: "too few digits NG", mutate: func(b *builder.UserBuilder) { b.WithPhone("12-34") }, errIs: user.ErrInvalidPhone},
			{name: "letters NG", mutate: func(b *builder.UserBuilder) { b.WithPhone("050-CALL-ME") }, errIs: user.ErrInvalidPhone},
			{name: "plus in the middle NG", mutate: func(b *builder.UserBuilder) { b.WithPhone("050+1234567") }, errIs: user.ErrInvalidPhone},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "admin OK", mutate: func(b *builder.UserBuilder) { b.AsAdmin() }},
			{name: "unknown role NG", mutate: func(b *builder.UserBuilder) { b.Role = "coach" }, errIs: user.ErrInvalidRole},
		})
	})
}

func TestUser_Children(t *testing.T) {
	u, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	age := 9
	noa, err := u.AddChild(mustName(t, "Noa Levi"), &age, " beginner ", now)
	require.NoError(t, err)
	_, err = u.AddChild(mustName(t, "Itai Levi"), nil, "", now)
	require.NoError(t, err)

	expected := []user.Child{
		{Name: mustName(t, "Noa Levi"), Age: &age, SkillLevel: "beginner"},
		{Name: mustName(t, "Itai Levi")},
	}
	if diff := cmp.Diff(expected, u.Children(), cmpOpts...); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	t.Run("same name in any case is a duplicate", func(t *testing.T) {
		_, err := u.AddChild(mustName(t, "noa  LEVI"), nil, "", now)
		assert.ErrorIs(t, err, user.ErrDuplicateChild)
	})

	t.Run("age out of range", func(t *testing.T) {
		bad := 120
		_, err := u.AddChild(mustName(t, "Tamar Levi"), &bad, "", now)
		assert.ErrorIs(t, err, user.ErrInvalidAge)
	})

	t.Run("Children returns a copy", func(t *testing.T) {
		cs := u.Children()
		cs[0].SkillLevel = "pro"
		assert.Equal(t, "beginner", u.Children()[0].SkillLevel)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, u.RemoveChild(noa.ID, now))
		assert.Len(t, u.Children(), 1)
		assert.ErrorIs(t, u.RemoveChild(noa.ID, now), user.ErrChildNotFound)
	})
}

func TestUser_ResolvePlayer(t *testing.T) {
	u, err := builder.NewUserBuilder().WithChildren("Noa Levi").BuildDomain()
	require.NoError(t, err)
	childID := u.Children()[0].ID

	cases := []struct {
		label    string
		expected user.Player
		errIs    error
	}{
		{label: "Dana Levi", expected: user.Player{Label: "Dana Levi"}},
		{label: "  dana levi ", expected: user.Player{Label: "Dana Levi"}},
		{label: "NOA LEVI", expected: user.Player{Label: "Noa Levi", ChildID: &childID}},
		{label: "Someone Else", errIs: user.ErrPlayerNotRegistered},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			actual, err := u.ResolvePlayer(tc.label)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, actual); diff != "" {
				t.Errorf("player mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUser_Plan(t *testing.T) {
	u, err := builder.NewUserBuilder().BuildDomain()
	require.NoError(t, err)

	assert.ErrorIs(t, u.SetPlanPaid(true, now), user.ErrNoPlanSelected)

	plan, err := user.FindPlan("p12")
	require.NoError(t, err)
	u.SelectPlan(plan, now)
	require.NoError(t, u.SetPlanPaid(true, now))

	later := now.Add(30 * 24 * time.Hour)
	u.SelectPlan(plan, later)
	sub := u.Subscription()
	require.NotNil(t, sub)
	assert.Equal(t, "p12", sub.PlanID)
	assert.False(t, sub.Paid, "a new period starts unpaid")
	assert.Equal(t, later, sub.StartedAt)

	_, err = user.FindPlan("p99")
	assert.ErrorIs(t, err, user.ErrUnknownPlan)
	assert.Len(t, user.Plans(), 5)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {

			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
