// Package mdns advertises the server on the local network so clients can
// discover it without manual configuration.
package mdns

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/hashicorp/mdns"
)

const (
	// ServiceType is the mDNS service type advertised by Plateful servers.
	ServiceType = "_plateful._tcp"

	// APIVersion is advertised in TXT records.
	APIVersion = "v1"

	// ServerVersion is advertised in TXT records.
	ServerVersion = "1.0.0"
)

// Service manages mDNS advertisement. Failures are non-fatal; multicast is
// frequently unavailable in containers.
type Service struct {
	server *mdns.Server
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService creates an mDNS service.
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// Start begins advertising on the given port. Call after the HTTP listener
// is up. Safe to call again; a running advertisement is replaced.
func (s *Service) Start(instanceName string, port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
	}

	host, err := os.Hostname()
	if err != nil {
		host = "plateful-server"
	}

	txtRecords := []string{
		fmt.Sprintf("name=%s", instanceName),
		fmt.Sprintf("version=%s", ServerVersion),
		fmt.Sprintf("api=%s", APIVersion),
	}

	service, err := mdns.NewMDNSService(
		host,
		ServiceType,
		"", // domain, empty = .local
		"", // host, empty = system hostname
		port,
		nil, // all interfaces
		txtRecords,
	)
	if err != nil {
		return fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("start mDNS server: %w", err)
	}

	s.server = server

	s.logger.Info("mDNS advertisement started",
		"service", ServiceType,
		"port", port,
		"name", instanceName,
	)

	return nil
}

// Stop stops advertising. Safe to call multiple times or before Start.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		_ = s.server.Shutdown()
		s.server = nil
		s.logger.Info("mDNS advertisement stopped")
	}
}
