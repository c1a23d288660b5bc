package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name string
	err  error
	got  []string
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub " + s.name }
func (s *stubCommand) Run(args []string) error {
	s.got = args
	return s.err
}

func TestRegistry_DispatchPassesRemainingArgs(t *testing.T) {
	migrate := &stubCommand{name: "migrate"}
	r := NewRegistry(migrate)

	require.NoError(t, r.Dispatch([]string{"migrate", "up", "1"}))
	assert.Equal(t, []string{"up", "1"}, migrate.got)
}

func TestRegistry_DispatchErrors(t *testing.T) {
	r := NewRegistry(&stubCommand{name: "broken", err: errors.New("boom")})

	assert.Error(t, r.Dispatch(nil))
	assert.ErrorContains(t, r.Dispatch([]string{"nope"}), `unknown command "nope"`)
	assert.ErrorContains(t, r.Dispatch([]string{"broken"}), "broken: boom")
}

func TestRegistry_HelpKeepsRegistrationOrder(t *testing.T) {
	first := &stubCommand{name: "wait-for-db"}
	r := NewRegistry(first, &stubCommand{name: "health-check"})
	r.Register(&stubCommand{name: "wait-for-db"})

	var buf bytes.Buffer
	r.WriteHelp(&buf)

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("wait-for-db")), bytes.Index(buf.Bytes(), []byte("health-check")))
	assert.Contains(t, out, "stub health-check")

	got, ok := r.Get("wait-for-db")
	require.True(t, ok)
	assert.NotSame(t, first, got)
}
