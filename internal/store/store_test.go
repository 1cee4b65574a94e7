package store

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRoundTrip(t *testing.T) {
	s := NewMemStore()

	_, ok := s.Get(KeyAuthToken)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyAuthToken, "tok"))
	got, ok := s.Get(KeyAuthToken)
	require.True(t, ok)
	assert.Equal(t, "tok", got)
}

func TestMemStoreOverwrite(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Set(KeyDailyScore, "5"))
	require.NoError(t, s.Set(KeyDailyScore, "7.5"))

	got, ok := s.Get(KeyDailyScore)
	require.True(t, ok)
	assert.Equal(t, "7.5", got)
}

func TestMemStoreDelete(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Set(KeyLastCheckIn, "2025-03-14"))
	require.NoError(t, s.Delete(KeyLastCheckIn))

	_, ok := s.Get(KeyLastCheckIn)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(KeyLastCheckIn))
}

// The reminder scheduler polls the store from its own goroutine while
// handlers write, so MemStore must tolerate concurrent access.
func TestMemStoreConcurrentAccess(t *testing.T) {
	s := NewMemStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				require.NoError(t, s.Set(KeyDailyScore, strconv.Itoa(j)))
				s.Get(KeyLastCheckIn)
				if n%2 == 0 {
					require.NoError(t, s.Delete(KeyLastResponses))
				} else {
					require.NoError(t, s.Set(KeyLastResponses, "{}"))
				}
			}
		}(i)
	}
	wg.Wait()

	_, ok := s.Get(KeyDailyScore)
	assert.True(t, ok)
}

// The literal key values are a persistence contract; a rename would
// orphan existing rows.
func TestStorageKeyValues(t *testing.T) {
	assert.Equal(t, "auth_token", KeyAuthToken)
	assert.Equal(t, "lastCheckIn", KeyLastCheckIn)
	assert.Equal(t, "lastResponses", KeyLastResponses)
	assert.Equal(t, "dailyScore", KeyDailyScore)
	assert.Equal(t, "lastJournalEntry", KeyLastJournalEntry)
	assert.Equal(t, "lastCheckinResult", KeyLastCheckinResult)
	assert.Equal(t, "onboardingScore", KeyOnboardingScore)
	assert.Equal(t, "pendingJournal", KeyPendingJournal)
	assert.Equal(t, "chatLog", KeyChatLog)
}
