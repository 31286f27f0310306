package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SoundInkube/pkg/ptr"
)

func TestPaymentTargetFromIDs(t *testing.T) {
	target, err := PaymentTargetFromIDs(PaymentStudioBooking, ptr.Ptr(int64(7)), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, PaymentTarget{Type: PaymentStudioBooking, ID: 7}, target)

	_, err = PaymentTargetFromIDs(PaymentStudioBooking, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = PaymentTargetFromIDs(PaymentStudioBooking, ptr.Ptr(int64(7)), nil, ptr.Ptr(int64(3)), nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = PaymentTargetFromIDs(PaymentEnrollment, ptr.Ptr(int64(7)), nil, nil, nil)
	assert.ErrorIs(t, err, ErrTargetTypeMismatch)
}

func TestPaymentTarget_IsSet(t *testing.T) {
	assert.True(t, PaymentTarget{Type: PaymentEnrollment, ID: 3}.IsSet())
	assert.False(t, PaymentTarget{}.IsSet())
	assert.False(t, PaymentTarget{Type: PaymentEnrollment}.IsSet())
}

func TestReviewTargetFromIDs(t *testing.T) {
	target, err := ReviewTargetFromIDs(nil, nil, nil, ptr.Ptr(int64(5)))
	require.NoError(t, err)
	assert.Equal(t, ReviewTarget{Kind: ReviewListing, ID: 5}, target)

	_, err = ReviewTargetFromIDs(ptr.Ptr(int64(1)), ptr.Ptr(int64(2)), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = ReviewTargetFromIDs(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestValidComment(t *testing.T) {
	assert.False(t, ValidComment("коротко"))
	assert.True(t, ValidComment("Отличная студия, всё понравилось"))
	assert.False(t, ValidComment(string(make([]rune, 501))))
}
