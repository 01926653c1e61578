package service

import (
	"github.com/nypickups/backend/internal/domain"
)

// RideRepository is re-exported from domain for convenience
type RideRepository = domain.RideRepository
