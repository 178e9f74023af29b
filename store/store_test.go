package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubefeed/store"
)

const (
	channelOne   = "UCabcdefghijklmnopqrstuv"
	channelTwo   = "UC0123456789012345678901"
	channelThree = "UC_-_-_-_-_-_-_-_-_-_-_-"
)

func TestIsValidChannelURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected bool
	}{
		{
			name:     "empty string",
			uri:      "",
			expected: false,
		},
		{
			name:     "bare channel id",
			uri:      channelOne,
			expected: true,
		},
		{
			name:     "full channel URL",
			uri:      "https://www.youtube.com/channel/" + channelOne,
			expected: true,
		},
		{
			name:     "channel URL with trailing slash",
			uri:      "https://www.youtube.com/channel/" + channelOne + "/",
			expected: true,
		},
		{
			name:     "double trailing slash",
			uri:      channelOne + "//",
			expected: false,
		},
		{
			name:     "id too short",
			uri:      "UCabcdefghijklmnopqrstu",
			expected: false,
		},
		{
			name:     "id too long",
			uri:      "UC012345678901234567890123",
			expected: false,
		},
		{
			name:     "invalid character in id",
			uri:      "UCabcdefghijklmnopqrst!v",
			expected: false,
		},
		{
			name:     "wrong prefix",
			uri:      "XXabcdefghijklmnopqrstuv",
			expected: false,
		},
		{
			name:     "video URL without channel id",
			uri:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.IsValidChannelURI(tt.uri))
		})
	}
}

func TestParseChannelURI(t *testing.T) {
	id, ok := store.ParseChannelURI("https://www.youtube.com/channel/" + channelOne + "/")
	assert.True(t, ok)
	assert.Equal(t, channelOne, id)

	_, ok = store.ParseChannelURI("https://www.youtube.com/")
	assert.False(t, ok)
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "subscriptions"))
	require.NoError(t, s.Init())
	return s
}

func TestInitCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subscriptions")
	s := store.New(path)
	require.NoError(t, s.Init())

	ids, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAddIsIdempotent(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Add(channelOne))
	require.NoError(t, s.Add(channelOne))

	ids, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{channelOne}, ids)
}

func TestAddRejectsInvalidId(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Add("not-a-channel"))

	ids, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRemovePreservesOrder(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Add(channelOne))
	require.NoError(t, s.Add(channelTwo))
	require.NoError(t, s.Add(channelThree))

	require.NoError(t, s.Remove(channelTwo))

	ids, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{channelOne, channelThree}, ids)
}

func TestRemoveUnknownIdIsNoop(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Add(channelOne))
	require.NoError(t, s.Remove(channelTwo))

	ids, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{channelOne}, ids)
}

func TestAllSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subscriptions")
	content := channelOne + "\n\n" + channelTwo + "\n\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := store.New(path)
	ids, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []string{channelOne, channelTwo}, ids)
}

func TestAllMissingFileErrors(t *testing.T) {
	s := store.New(filepath.Join(t.TempDir(), "missing"))
	_, err := s.All()
	assert.Error(t, err)
}
