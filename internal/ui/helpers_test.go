package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2024, 5, 1, h, 0, 0, 0, time.Local) }
	assert.Equal(t, "Good morning, jane", Greeting(day(8), "jane"))
	assert.Equal(t, "Good afternoon, jane", Greeting(day(13), " jane "))
	assert.Equal(t, "Good evening", Greeting(day(20), ""))
}

func TestParseRoute(t *testing.T) {
	cases := map[string]Route{
		"":       RouteHome,
		"/":      RouteHome,
		"ai":     RouteAI,
		"/ai":    RouteAI,
		"/ai/":   RouteAI,
		"jobs":   RouteJobs,
		"/nope":  RouteHome,
		" /jobs": RouteJobs,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseRoute(in), "arg %q", in)
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hello", TruncateRunes("hello", 5))
	assert.Equal(t, "hel…", TruncateRunes("hello", 4))
	assert.Equal(t, "…", TruncateRunes("hello", 1))
	assert.Empty(t, TruncateRunes("hello", 0))
}

func TestWrappedLineCount(t *testing.T) {
	assert.Equal(t, 1, WrappedLineCount("", 10))
	assert.Equal(t, 2, WrappedLineCount("a\nb", 10))
	assert.Equal(t, 3, WrappedLineCount("abcdefghijklmnopqrstu", 10))
}

func TestPromptPreview(t *testing.T) {
	assert.Equal(t, "a b c", PromptPreview("  a\n b\r\n\tc "))
}

func TestJobDate(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "today", jobDate("2024-05-10", now))
	assert.Equal(t, "1 week ago", jobDate("2024-05-03", now))
	assert.Equal(t, "someday", jobDate("someday", now))
}

func TestNextStatusFilterCyclesThroughAll(t *testing.T) {
	seen := []string{}
	f := ""
	for i := 0; i < 5; i++ {
		f = nextStatusFilter(f)
		seen = append(seen, f)
	}
	assert.Equal(t, []string{"Applied", "Interviewing", "Offer", "Rejected", ""}, seen)
}
