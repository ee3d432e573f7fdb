package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
)

var ErrAlreadyStopped = errors.New("server is not running")

// Listener accepts terminal connections and runs one Session goroutine
// per connection. Closing the listening socket is the shutdown signal:
// the accept loop then broadcasts a disconnect to every live session and
// blocks until all of them have torn down.
type Listener struct {
	addr      string
	repos     *repository.Repositories
	registry  *Registry
	display   Display
	warnAfter time.Duration

	mu      sync.Mutex
	ln      net.Listener
	running bool
	wg      sync.WaitGroup
}

func NewListener(addr string, repos *repository.Repositories, registry *Registry, display Display, warnAfter time.Duration) *Listener {
	return &Listener{
		addr:      addr,
		repos:     repos,
		registry:  registry,
		display:   display,
		warnAfter: warnAfter,
	}
}

// Addr returns the bound listen address, useful when the configured port
// is 0.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Start binds the endpoint and serves until Stop closes it. It blocks
// for the lifetime of the server and returns after every session has
// deregistered.
func (l *Listener) Start() error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", l.addr, err)
	}

	l.mu.Lock()
	l.ln = ln
	l.running = true
	l.mu.Unlock()

	l.display.LogLine("Server started.", SeverityInfo)
	l.display.LogLine("Waiting for a connection on "+ln.Addr().String(), SeverityServer)

	for {
		conn, err := ln.Accept()
		if err != nil {
			l.shutdown(err)
			return nil
		}

		session := NewSession(conn, l.repos, l.registry, l.display, l.warnAfter)
		l.registry.Add(session)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			session.Run()
		}()
	}
}

// Stop closes the listening endpoint, unblocking the accept loop into
// its shutdown path. Returns ErrAlreadyStopped when the server is not
// running.
func (l *Listener) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return ErrAlreadyStopped
	}
	l.running = false
	l.display.LogLine("Closing server...", SeverityWarning)
	return l.ln.Close()
}

func (l *Listener) shutdown(cause error) {
	l.mu.Lock()
	wasRunning := l.running
	l.running = false
	l.mu.Unlock()

	if wasRunning {
		// Accept failed for a reason other than Stop closing the socket.
		l.display.LogLine(fmt.Sprintf("Accept failed: %v", cause), SeverityError)
	}

	l.display.LogLine("Disconnecting all terminals from the server...", SeverityWarning)
	l.registry.BroadcastDisconnect()
	l.wg.Wait()
	l.display.LogLine("All terminals have been disconnected.", SeverityInfo)
	l.display.LogLine("Server successfully closed.", SeverityInfo)
}
