//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"academy-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	sessionMissing := errs.Kind(errs.ErrNotFound, "session missing")
	memberMissing := errs.Kind(errs.ErrNotFound, "member missing")
	denied := errs.Kind(errs.ErrPermissionDenied, "denied")

	t.Run("siblings are distinct", func(t *testing.T) {
		assert.False(t, errs.Is(sessionMissing, memberMissing))
		assert.False(t, errs.Is(memberMissing, sessionMissing))
		assert.True(t, errs.Is(errs.Wrap(sessionMissing, "load"), sessionMissing))
	})

	t.Run("family matches every member", func(t *testing.T) {
		assert.True(t, errs.IsKind(sessionMissing, errs.ErrNotFound))
		assert.True(t, errs.IsKind(errs.Wrap(memberMissing, "load"), errs.ErrNotFound))
		assert.True(t, errs.IsKind(errs.Mark(errors.New("no rows"), memberMissing), errs.ErrNotFound))
		assert.False(t, errs.IsKind(denied, errs.ErrNotFound))
	})

	t.Run("specific target behaves like Is", func(t *testing.T) {
		assert.True(t, errs.IsKind(sessionMissing, sessionMissing))
		assert.False(t, errs.IsKind(memberMissing, sessionMissing))
		assert.False(t, errs.IsKind(nil, errs.ErrNotFound))
	})
}
