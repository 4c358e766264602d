package application

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// shutdownTimeout bounds how long Shutdown waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// A ServerAddress describes a server's connection.
// It supports two types of connections: a TCP connection ("tcp")
// and a Unix socket connection ("unix").
//
// TCP connections may additionally specify a TLS certificate and
// corresponding private key; when both are set the listener serves TLS.
type ServerAddress struct {
	// Address is formatted as a url: scheme://address.
	Address string `toml:"address"`
	// TLSCertPath is a path to the server's TLS certificate.
	TLSCertPath string `toml:"cert,omitempty"`
	// TLSKeyPath is a path to the server's TLS private key.
	TLSKeyPath string `toml:"key,omitempty"`
}

// resolveAndListen opens the listener described by the address.
func (addr *ServerAddress) resolveAndListen() (net.Listener, error) {
	u, err := url.Parse(addr.Address)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "tcp":
		ln, err := net.Listen(u.Scheme, u.Host)
		if err != nil {
			return nil, err
		}
		if addr.TLSCertPath == "" && addr.TLSKeyPath == "" {
			return ln, nil
		}
		cer, err := tls.LoadX509KeyPair(addr.TLSCertPath, addr.TLSKeyPath)
		if err != nil {
			ln.Close()
			return nil, err
		}
		return tls.NewListener(ln, &tls.Config{Certificates: []tls.Certificate{cer}}), nil
	case "unix":
		return net.Listen(u.Scheme, u.Path)
	default:
		return nil, fmt.Errorf("Unknown network type %q", u.Scheme)
	}
}

// A ServerBase represents the base features needed to implement
// a reserve service executable. It wraps an http.Handler with the
// network layer: one listener per configured address, a shared logger,
// and graceful shutdown of all listeners at once.
type ServerBase struct {
	Verb string

	logger *Logger

	mu       sync.Mutex
	servers  []*http.Server
	waitStop sync.WaitGroup
}

// NewServerBase creates a new generic server base with the given
// logger configuration and listen verb.
func NewServerBase(logConf *LoggerConfig, listenVerb string) *ServerBase {
	return &ServerBase{
		Verb:   listenVerb,
		logger: NewLogger(logConf),
	}
}

// ListenAndHandle serves handler on the given address in a background
// goroutine. It returns an error if the listener cannot be opened;
// serve-loop errors after that are logged, not returned.
func (sb *ServerBase) ListenAndHandle(addr *ServerAddress, handler http.Handler) error {
	ln, err := addr.resolveAndListen()
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: handler}
	sb.mu.Lock()
	sb.servers = append(sb.servers, srv)
	sb.mu.Unlock()

	sb.waitStop.Add(1)
	go func() {
		defer sb.waitStop.Done()
		sb.logger.Info(sb.Verb, "address", addr.Address)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			sb.logger.Error(err.Error(), "address", addr.Address)
		}
	}()
	return nil
}

// Logger returns the server base's logger instance.
func (sb *ServerBase) Logger() *Logger {
	return sb.logger
}

// Shutdown gracefully closes all of the server's listeners, waiting up
// to shutdownTimeout for in-flight requests to complete.
func (sb *ServerBase) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sb.mu.Lock()
	servers := sb.servers
	sb.mu.Unlock()

	var firstErr error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	sb.waitStop.Wait()
	return firstErr
}
