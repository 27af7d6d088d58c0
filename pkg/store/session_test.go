package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionIsIdle(t *testing.T) {
	s := NewSession("abc")
	assert.Equal(t, "abc", s.ID)
	assert.False(t, s.AwaitingConsent())
}

func TestCloneDoesNotAlias(t *testing.T) {
	s := NewSession("abc")
	s.LastSources = []string{"a.md"}
	s.AppendHistory(RoleUser, "hello", 0, time.Now())

	c := s.Clone()
	c.LastSources[0] = "b.md"
	c.History[0].Content = "changed"

	assert.Equal(t, "a.md", s.LastSources[0])
	assert.Equal(t, "hello", s.History[0].Content)
}

func TestAppendHistoryTrims(t *testing.T) {
	s := NewSession("abc")
	for i := 0; i < 35; i++ {
		s.AppendHistory(RoleUser, fmt.Sprintf("m%d", i), DefaultHistoryLimit, time.Now())
	}
	assert.Len(t, s.History, DefaultHistoryLimit)
	assert.Equal(t, "m5", s.History[0].Content)
	assert.Equal(t, "m34", s.History[len(s.History)-1].Content)
}
