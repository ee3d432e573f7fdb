package server_test

import (
	"bufio"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/server"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	mu            sync.Mutex
	lines         []string
	eventName     string
	eventLocation string
	lists         [][]server.SessionInfo
}

func (d *fakeDisplay) LogLine(text string, sev server.Severity) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, string(sev)+": "+text)
}

func (d *fakeDisplay) SessionListChanged(sessions []server.SessionInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lists = append(d.lists, sessions)
}

func (d *fakeDisplay) CurrentEvent() (string, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.eventName, d.eventLocation
}

type sessionHarness struct {
	client   net.Conn
	replies  <-chan string
	session  *server.Session
	registry *server.Registry
	display  *fakeDisplay
}

func startSession(t *testing.T, repos *repository.Repositories, warnAfter time.Duration) *sessionHarness {
	t.Helper()

	serverConn, clientConn := net.Pipe()
	display := &fakeDisplay{eventName: "Orientation", eventLocation: "Hall B"}
	registry := server.NewRegistry(display)
	session := server.NewSession(serverConn, repos, registry, display, warnAfter)
	registry.Add(session)
	go session.Run()

	replies := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(clientConn)
		for scanner.Scan() {
			replies <- scanner.Text()
		}
		close(replies)
	}()

	t.Cleanup(func() { clientConn.Close() })

	return &sessionHarness{
		client:   clientConn,
		replies:  replies,
		session:  session,
		registry: registry,
		display:  display,
	}
}

func (h *sessionHarness) sendLines(t *testing.T, lines ...string) {
	t.Helper()
	payload := ""
	for _, line := range lines {
		payload += line + "\n"
	}
	h.client.SetWriteDeadline(time.Now().Add(2 * time.Second))
	if _, err := h.client.Write([]byte(payload)); err != nil {
		t.Fatalf("failed to write %q: %v", payload, err)
	}
}

func (h *sessionHarness) expectReply(t *testing.T, want string) {
	t.Helper()
	select {
	case got, ok := <-h.replies:
		if !ok {
			t.Fatalf("connection closed while waiting for %q", want)
		}
		if got != want {
			t.Fatalf("expected reply %q, got %q", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for reply %q", want)
	}
}

func (h *sessionHarness) waitClosed(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case <-h.session.Done():
	case <-time.After(within):
		t.Fatalf("session did not close within %v", within)
	}
}

func TestSession_EnrollScanScenario(t *testing.T) {
	var enrolled domain.EnrollmentRequest
	var scans []domain.AttendanceScan

	users := &testutil.FakeUserRepo{
		EnrollFunc: func(ctx context.Context, req domain.EnrollmentRequest) (uint, error) {
			enrolled = req
			return 1, nil
		},
	}
	attendance := &testutil.FakeAttendanceRepo{
		RecordFunc: func(ctx context.Context, scan domain.AttendanceScan) (string, error) {
			scans = append(scans, scan)
			if len(scans) > 1 {
				return "", domain.ErrDuplicateAttendance
			}
			return "Ann", nil
		},
	}

	h := startSession(t, testutil.FakeRepos(users, attendance), time.Second)

	h.sendLines(t, "client-1")
	h.sendLines(t, "enrollFinger", "Ann", "", "Lee", "30", "F", "555-1111", "1 Main St", "42")
	h.expectReply(t, "OK")

	assert.Equal(t, "Ann", enrolled.FirstName)
	assert.Equal(t, "Lee", enrolled.LastName)
	assert.Equal(t, 30, enrolled.Age)
	assert.Equal(t, 42, enrolled.FingerprintID)
	assert.Equal(t, "client-1", enrolled.ClientID)

	h.sendLines(t, "scanFinger", "42")
	h.expectReply(t, "OK")
	h.expectReply(t, "Ann")

	require.Len(t, scans, 1)
	assert.Equal(t, 42, scans[0].FingerprintID)
	assert.Equal(t, "client-1", scans[0].ClientID)
	assert.Equal(t, "Orientation", scans[0].EventName)
	assert.Equal(t, "Hall B", scans[0].EventLocation)

	h.sendLines(t, "scanFinger", "42")
	h.expectReply(t, "FAIL")
}

func TestSession_EnrollFailureRepliesFail(t *testing.T) {
	users := &testutil.FakeUserRepo{
		EnrollFunc: func(ctx context.Context, req domain.EnrollmentRequest) (uint, error) {
			return 0, domain.ErrDuplicateKey
		},
	}
	h := startSession(t, testutil.FakeRepos(users, nil), time.Second)

	h.sendLines(t, "client-1")
	h.sendLines(t, "enrollFinger", "Ann", "", "Lee", "30", "F", "555-1111", "1 Main St", "42")
	h.expectReply(t, "FAIL")

	// The session survives a gateway failure
	h.sendLines(t, "beat")
	h.expectReply(t, "heartbeat")
}

func TestSession_MalformedEnrollNeverHitsGateway(t *testing.T) {
	var calls int
	users := &testutil.FakeUserRepo{
		EnrollFunc: func(ctx context.Context, req domain.EnrollmentRequest) (uint, error) {
			calls++
			return 1, nil
		},
	}
	h := startSession(t, testutil.FakeRepos(users, nil), time.Second)

	h.sendLines(t, "client-1")
	h.sendLines(t, "enrollFinger", "Ann", "", "Lee", "not-a-number", "F", "555-1111", "1 Main St", "42")
	h.expectReply(t, "FAIL")
	assert.Zero(t, calls)
}

func TestSession_BeatKeepsSessionAlive(t *testing.T) {
	h := startSession(t, testutil.FakeRepos(nil, nil), 150*time.Millisecond)

	h.sendLines(t, "client-1")

	// Beat well inside the warning threshold for several windows
	deadline := time.Now().Add(600 * time.Millisecond)
	for time.Now().Before(deadline) {
		h.sendLines(t, "beat")
		h.expectReply(t, "heartbeat")
		time.Sleep(50 * time.Millisecond)
	}

	select {
	case <-h.session.Done():
		t.Fatal("session closed despite regular heartbeats")
	default:
	}

	h.sendLines(t, "disconnect")
	h.waitClosed(t, time.Second)
	assert.Equal(t, 0, h.registry.Len())
	assert.Equal(t, server.StateClosed, h.session.State())
}

func TestSession_SilenceTimesOut(t *testing.T) {
	h := startSession(t, testutil.FakeRepos(nil, nil), 80*time.Millisecond)

	h.sendLines(t, "client-1")

	// No traffic at all: warned at T, closed shortly after
	h.waitClosed(t, time.Second)
	assert.Equal(t, 0, h.registry.Len())

	h.display.mu.Lock()
	defer h.display.mu.Unlock()
	var warned bool
	for _, line := range h.display.lines {
		if line == "WARNING: No response from terminal "+h.session.Name()+" in a set amount of time" {
			warned = true
		}
	}
	assert.True(t, warned, "expected a no-response warning, got %v", h.display.lines)
}

func TestSession_UnknownCommandsAreIgnored(t *testing.T) {
	h := startSession(t, testutil.FakeRepos(nil, nil), time.Second)

	h.sendLines(t, "client-1")
	h.sendLines(t, "flushCapacitor", "beat")

	// The unknown frame produces no reply at all; the beat still works
	h.expectReply(t, "heartbeat")
}

func TestSession_ExternalDisconnectNotifiesTerminal(t *testing.T) {
	h := startSession(t, testutil.FakeRepos(nil, nil), time.Second)

	h.sendLines(t, "client-1")
	h.sendLines(t, "beat")
	h.expectReply(t, "heartbeat")

	h.session.Disconnect()
	h.expectReply(t, "disconnect")
	h.waitClosed(t, time.Second)
	assert.Equal(t, 0, h.registry.Len())
}

func TestSession_IdentificationPrecedesCommands(t *testing.T) {
	var got domain.AttendanceScan
	attendance := &testutil.FakeAttendanceRepo{
		RecordFunc: func(ctx context.Context, scan domain.AttendanceScan) (string, error) {
			got = scan
			return "Ann", nil
		},
	}
	h := startSession(t, testutil.FakeRepos(nil, attendance), time.Second)

	// The first line is always the terminal identifier, even when it
	// looks like a command
	h.sendLines(t, "scanFinger")
	h.sendLines(t, "scanFinger", "7")
	h.expectReply(t, "OK")
	h.expectReply(t, "Ann")
	assert.Equal(t, "scanFinger", got.ClientID)
	assert.Equal(t, "scanFinger", h.session.ClientID())
}
