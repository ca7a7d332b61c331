package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/kiriseka/portfolio/internal/config"
	"github.com/kiriseka/portfolio/internal/contact"
	"github.com/kiriseka/portfolio/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestContentCheck_Embedded(t *testing.T) {
	out, err := execute(t, "content", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 6 projects, 12 skills, 10 links, 4 log entries, 4 palette items")
}

func TestContentCheck_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: {name: a, boot_line: b}\nskills: {links: [{source: x, target: y}]}\n"), 0o644))

	_, err := execute(t, "content", "check", path)
	assert.Error(t, err)
}

func TestVisitorsPrune(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "portfolio.db"))

	out, err := execute(t, "visitors", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 0 visitor records")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger("shouting")
	assert.Error(t, err)
}

func TestNewTransmitter(t *testing.T) {
	tx := newTransmitter(config.ContactConfig{Mode: config.ContactSimulated, Delay: time.Second})
	assert.Equal(t, contact.Simulated{Delay: time.Second}, tx)

	tx = newTransmitter(config.ContactConfig{Mode: config.ContactSMTP, SMTPHost: "h", SMTPPort: "25"})
	smtp, ok := tx.(*contact.SMTP)
	require.True(t, ok)
	assert.Equal(t, "h", smtp.Host)
}

func TestSweepVisitors_StopsOnCancel(t *testing.T) {
	logger = zap.NewNop()
	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweepVisitors(ctx, db, time.Hour, time.Millisecond) }()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestRunServe_WatcherErrorStartsNothing(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	saved := cfg
	t.Cleanup(func() { cfg = saved })
	logger = zap.NewNop()
	cfg = config.Config{
		Port:             "0",
		GinMode:          "test",
		DBPath:           filepath.Join(t.TempDir(), "portfolio.db"),
		ContentWatch:     true,
		Contact:          config.ContactConfig{Mode: config.ContactSimulated},
		Admin:            config.AdminConfig{Username: "root", Password: "hunter2"},
		VisitorRetention: time.Hour,
		SweepInterval:    time.Hour,
	}

	done := make(chan error, 1)
	go func() { done <- runServe(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "no backing file")
	case <-time.After(5 * time.Second):
		t.Fatal("runServe kept running after the watcher failed")
	}
}
