// Package servicedir stores the services configured for each home. The
// layout engine reads services from here but never writes them.
package servicedir

import (
	"errors"
	"fmt"
	"time"

	"nathanbeddoewebdev/homegrid/internal/util"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// ErrNotFound is returned when a service id is not in the directory.
var ErrNotFound = errors.New("servicedir: service not found")

// Record is one stored service.
type Record struct {
	ID        string
	Name      string
	Kind      domain.ServiceKind
	Home      string
	URL       string
	Position  int
	CreatedAt time.Time
}

// Service returns the layout engine's view of the record.
func (r Record) Service() domain.Service {
	return domain.Service{ID: r.ID, Name: r.Name, Kind: r.Kind, Home: r.Home, URL: r.URL}
}

// Validate checks the fields a record needs before it is stored.
func (r Record) Validate() error {
	if err := util.ValidateName("service id", r.ID); err != nil {
		return err
	}
	if err := util.ValidateName("home", r.Home); err != nil {
		return err
	}
	if r.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, r.Kind)
	}
	return nil
}

// Services converts records to domain services, preserving order.
func Services(records []Record) []domain.Service {
	out := make([]domain.Service, len(records))
	for i, r := range records {
		out[i] = r.Service()
	}
	return out
}

// Index maps services by id.
func Index(services []domain.Service) map[string]domain.Service {
	m := make(map[string]domain.Service, len(services))
	for _, s := range services {
		m[s.ID] = s
	}
	return m
}
