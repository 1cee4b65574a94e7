package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStructuredError(t *testing.T) {
	cases := []struct {
		err  *Error
		want Kind
	}{
		{&Error{Kind: KindNetwork, Message: "backend unreachable"}, KindNetwork},
		{&Error{Kind: KindAuth, Status: 401, Message: "token expired"}, KindAuth},
		{&Error{Kind: KindHTTP, Status: 500, Message: "internal"}, KindHTTP},
		{&Error{Kind: KindValidation, Message: "decode response body"}, KindValidation},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.err))
	}
}

func TestClassifyWrappedError(t *testing.T) {
	inner := &Error{Kind: KindAuth, Status: 403, Message: "forbidden"}
	wrapped := fmt.Errorf("loading profile: %w", inner)
	assert.Equal(t, KindAuth, Classify(wrapped))
	assert.True(t, IsAuth(wrapped))
}

func TestClassifyForeignErrorFallback(t *testing.T) {
	cases := []struct {
		msg  string
		want Kind
	}{
		{"server said 401", KindAuth},
		{"got 403 from upstream", KindAuth},
		{"Authentication required", KindAuth},
		{"Failed to fetch", KindNetwork},
		{"dial tcp: connection refused", KindNetwork},
		{"lookup backend: no such host", KindNetwork},
		{"Network request failed", KindNetwork},
		{"something else entirely", KindUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(errors.New(tc.msg)), tc.msg)
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Equal(t, KindUnknown, Classify(nil))
}

// The structured kind wins over whatever the message text happens to
// contain.
func TestStructuredKindBeatsMessageText(t *testing.T) {
	err := &Error{Kind: KindHTTP, Status: 500, Message: "user 401 database row missing"}
	assert.Equal(t, KindHTTP, Classify(err))
	assert.False(t, IsAuth(err))
}

func TestErrorStringIncludesStatus(t *testing.T) {
	withStatus := &Error{Kind: KindAuth, Status: 401, Message: "nope"}
	assert.Contains(t, withStatus.Error(), "HTTP 401")
	assert.Contains(t, withStatus.Error(), "auth")

	withoutStatus := &Error{Kind: KindNetwork, Message: "backend unreachable"}
	assert.NotContains(t, withoutStatus.Error(), "HTTP")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Kind: KindNetwork, Message: "backend unreachable", Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "network", KindNetwork.String())
	assert.Equal(t, "http", KindHTTP.String())
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
