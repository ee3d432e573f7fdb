package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
)

// SessionState tracks the protocol state machine. Transitions only move
// forward; Closed is terminal.
type SessionState int32

const (
	StateConnecting SessionState = iota
	StateIdentified
	StateActive
	StateClosing
	StateClosed
)

const (
	nameCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	nameLength  = 8

	writeWait = 10 * time.Second
)

var (
	errClosing         = errors.New("session closing")
	errLivenessExpired = errors.New("liveness window expired")
)

// Session is the server-side handle for one connected terminal. All reads
// and writes happen on the session's own goroutine; only Disconnect and
// Info are safe to call from outside.
type Session struct {
	name     string
	conn     net.Conn
	reader   *bufio.Reader
	repos    *repository.Repositories
	registry *Registry
	display  Display

	// warnAfter is the no-response warning threshold; a session silent
	// for twice that long is forcibly closed.
	warnAfter time.Duration
	pollEvery time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	state    atomic.Int32

	mu          sync.Mutex
	clientID    string
	connectedAt time.Time

	lastActivity time.Time // owned by the run loop
	warned       bool
}

func NewSession(conn net.Conn, repos *repository.Repositories, registry *Registry, display Display, warnAfter time.Duration) *Session {
	poll := warnAfter / 8
	if poll < 5*time.Millisecond {
		poll = 5 * time.Millisecond
	}
	if poll > 500*time.Millisecond {
		poll = 500 * time.Millisecond
	}
	return &Session{
		name:        generateName(),
		conn:        conn,
		reader:      bufio.NewReader(conn),
		repos:       repos,
		registry:    registry,
		display:     display,
		warnAfter:   warnAfter,
		pollEvery:   poll,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		connectedAt: time.Now(),
	}
}

func (s *Session) Name() string { return s.name }

// State reports the current protocol state.
func (s *Session) State() SessionState { return SessionState(s.state.Load()) }

// Done is closed once the session has fully torn down.
func (s *Session) Done() <-chan struct{} { return s.done }

// Disconnect cooperatively marks the session for termination. Safe to
// call from any goroutine and more than once.
func (s *Session) Disconnect() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionInfo{
		Name:        s.name,
		ClientID:    s.clientID,
		RemoteAddr:  s.conn.RemoteAddr().String(),
		ConnectedAt: s.connectedAt,
	}
}

func (s *Session) ClientID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID
}

// Run drives the session to completion: identification handshake, the
// command loop, then teardown. It blocks until the session is closed.
func (s *Session) Run() {
	defer s.teardown()

	s.display.LogLine("Just connected to terminal "+s.conn.RemoteAddr().String(), SeverityServer)

	s.lastActivity = time.Now()
	clientID, err := s.readLine()
	if err != nil {
		s.display.LogLine(fmt.Sprintf("Terminal %s dropped before identifying", s.name), SeverityWarning)
		return
	}
	s.mu.Lock()
	s.clientID = clientID
	s.mu.Unlock()
	s.state.Store(int32(StateIdentified))
	s.state.Store(int32(StateActive))

	for {
		line, err := s.readLine()
		switch {
		case errors.Is(err, errClosing):
			// Courtesy notice so the terminal can reset its own state.
			s.display.LogLine("Forced to close connection with terminal "+s.name, SeverityWarning)
			s.send("disconnect")
			return
		case errors.Is(err, errLivenessExpired):
			s.display.LogLine(fmt.Sprintf("Terminal %s unresponsive, forcing the connection closed", s.name), SeverityWarning)
			return
		case err != nil:
			s.display.LogLine(fmt.Sprintf("Connection error on terminal %s: %v", s.name, err), SeverityError)
			return
		}

		if s.dispatch(line) {
			return
		}
	}
}

// readLine reads one newline-terminated frame. Reads run against short
// deadlines so the liveness clock keeps advancing while no data is
// pending; a partial line split across a deadline is preserved.
func (s *Session) readLine() (string, error) {
	var pending strings.Builder
	for {
		select {
		case <-s.stop:
			return "", errClosing
		default:
		}

		s.conn.SetReadDeadline(time.Now().Add(s.pollEvery))
		chunk, err := s.reader.ReadString('\n')
		pending.WriteString(chunk)
		if err == nil {
			s.lastActivity = time.Now()
			s.warned = false
			return strings.TrimRight(pending.String(), "\r\n"), nil
		}

		var ne net.Error
		if !errors.As(err, &ne) || !ne.Timeout() {
			return "", err
		}

		elapsed := time.Since(s.lastActivity)
		switch {
		case elapsed >= 2*s.warnAfter:
			return "", errLivenessExpired
		case elapsed >= s.warnAfter && !s.warned:
			s.warned = true
			s.display.LogLine(fmt.Sprintf("No response from terminal %s in a set amount of time", s.name), SeverityWarning)
			s.Disconnect()
		}
	}
}

// dispatch handles one command frame. Returns true when the session
// should close. Unrecognized commands are ignored without a reply.
func (s *Session) dispatch(command string) bool {
	switch command {
	case "beat":
		receivedAt := s.lastActivity
		s.send("heartbeat")
		s.display.LogLine(fmt.Sprintf("terminal=%s rt=%dms", s.name, time.Since(receivedAt).Milliseconds()), SeverityServer)

	case "disconnect":
		s.display.LogLine("Closing connection for terminal "+s.name, SeverityServer)
		return true

	case "enrollFinger":
		s.handleEnroll()

	case "scanFinger":
		s.handleScan()

	case "deleteFingerOk":
		s.display.LogLine(fmt.Sprintf("Successfully deleted fingerprint id on terminal %s with identifier %s", s.name, s.ClientID()), SeverityClient)

	case "deleteFingerFail":
		s.display.LogLine(fmt.Sprintf("Failed to delete fingerprint id on terminal %s with identifier %s", s.name, s.ClientID()), SeverityClient)

	case "deleteAllDataFromDatabase":
		s.display.LogLine(fmt.Sprintf("ALL DATA on terminal %s with id %s is wiped!", s.name, s.ClientID()), SeverityWarning)
	}
	return false
}

func (s *Session) handleEnroll() {
	fields := make([]string, 8)
	for i := range fields {
		line, err := s.readLine()
		if err != nil {
			return
		}
		fields[i] = line
	}

	age, ageErr := strconv.Atoi(fields[3])
	fingerprintID, fpErr := strconv.Atoi(fields[7])
	if ageErr != nil || fpErr != nil {
		s.display.LogLine(fmt.Sprintf("Malformed enrollFinger frame from terminal %s", s.name), SeverityError)
		s.send("FAIL")
		return
	}

	req := domain.EnrollmentRequest{
		FirstName:     fields[0],
		MiddleName:    fields[1],
		LastName:      fields[2],
		Age:           age,
		Gender:        fields[4],
		PhoneNumber:   fields[5],
		Address:       fields[6],
		FingerprintID: fingerprintID,
		ClientID:      s.ClientID(),
	}

	if _, err := s.repos.Users.Enroll(context.Background(), req); err != nil {
		s.display.LogLine(fmt.Sprintf("Enrollment failed on terminal %s: %v", s.name, err), SeverityError)
		s.send("FAIL")
		return
	}

	s.display.LogLine("Successfully enrolled: "+req.FullName(), SeverityClient)
	s.send("OK")
}

func (s *Session) handleScan() {
	raw, err := s.readLine()
	if err != nil {
		return
	}
	fingerprintID, convErr := strconv.Atoi(raw)
	if convErr != nil {
		s.display.LogLine(fmt.Sprintf("Malformed scanFinger frame from terminal %s", s.name), SeverityError)
		s.send("FAIL")
		return
	}

	s.display.LogLine("Searching database for user with fingerprint ID: "+raw, SeverityClient)

	eventName, eventLocation := s.display.CurrentEvent()
	scan := domain.AttendanceScan{
		FingerprintID: fingerprintID,
		ClientID:      s.ClientID(),
		EventName:     eventName,
		EventLocation: eventLocation,
		At:            time.Now(),
	}

	firstName, err := s.repos.Attendance.Record(context.Background(), scan)
	if err != nil {
		s.send("FAIL")
		s.display.LogLine(fmt.Sprintf("Attendance rejected for fingerprint %d on terminal %s: %v", fingerprintID, s.name, err), SeverityError)
		return
	}

	s.send("OK")
	s.send(firstName)
	s.display.LogLine(fmt.Sprintf("User %s matches fingerprint ID %d", firstName, fingerprintID), SeverityClient)
}

func (s *Session) send(command string) {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if _, err := s.conn.Write([]byte(command + "\n")); err != nil {
		s.display.LogLine("Error sending command to terminal "+s.name, SeverityError)
	}
}

func (s *Session) teardown() {
	s.state.Store(int32(StateClosing))
	s.Disconnect()
	s.conn.Close()
	s.registry.Remove(s)
	s.state.Store(int32(StateClosed))
	close(s.done)
	s.display.LogLine("Successfully closed connection for terminal "+s.name, SeverityServer)
}

func generateName() string {
	b := make([]byte, nameLength)
	for i := range b {
		b[i] = nameCharset[rand.IntN(len(nameCharset))]
	}
	return string(b)
}
