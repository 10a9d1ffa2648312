package domain

import "errors"

// Sentinel errors for enumeration decoding and selection building.
//
//	return fmt.Errorf("decode widget %s: %w", id, domain.ErrUnknownMetric)
var (
	// ErrUnknownKind indicates a service kind outside the closed set.
	ErrUnknownKind = errors.New("unknown service kind")

	// ErrUnknownMetric indicates a metric that is not part of the kind's catalog.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUnknownSize indicates a widget size outside the closed set.
	ErrUnknownSize = errors.New("unknown widget size")

	// ErrKindMismatch indicates a metric selection whose tag does not match
	// the service kind of the widget it is attached to.
	ErrKindMismatch = errors.New("metric selection kind mismatch")
)
