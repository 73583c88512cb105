package domain

import (
	"testing"
	"time"

	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRefreshTransition_Allowed(t *testing.T) {
	allowed := []struct {
		current RefreshStatus
		next    RefreshStatus
	}{
		{RefreshPending, RefreshProcessing},
		{RefreshPending, RefreshFailed},
		{RefreshProcessing, RefreshDone},
		{RefreshProcessing, RefreshFailed},
		{RefreshProcessing, RefreshPending},
		{RefreshFailed, RefreshPending},
		{RefreshFailed, RefreshProcessing},
		{RefreshDone, RefreshPending},
	}

	for _, tc := range allowed {
		assert.NoError(t, ValidateRefreshTransition(tc.current, tc.next), "%s -> %s", tc.current, tc.next)
	}
}

func TestValidateRefreshTransition_Illegal(t *testing.T) {
	illegal := []struct {
		current RefreshStatus
		next    RefreshStatus
	}{
		{RefreshDone, RefreshProcessing},
		{RefreshDone, RefreshDone},
		{RefreshDone, RefreshFailed},
		{RefreshPending, RefreshDone},
		{RefreshPending, RefreshPending},
		{RefreshFailed, RefreshDone},
	}

	for _, tc := range illegal {
		err := ValidateRefreshTransition(tc.current, tc.next)
		require.Error(t, err, "%s -> %s", tc.current, tc.next)
		assert.ErrorIs(t, err, e.ErrIllegalRefreshTransition)
		// В тексте ошибки должна быть названа недопустимая пара
		assert.Contains(t, err.Error(), string(tc.current))
		assert.Contains(t, err.Error(), string(tc.next))
	}
}

func TestCredentialExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var nilCred *Credential
	assert.True(t, nilCred.Expired(now, 0))

	cred := NewCredential("t", now.Add(10*time.Minute))
	assert.False(t, cred.Expired(now, 2*time.Minute))
	// запас skew делает токен протухшим раньше фактического истечения
	assert.True(t, cred.Expired(now.Add(9*time.Minute), 2*time.Minute))
	assert.True(t, cred.Expired(now.Add(10*time.Minute), 0))
}
