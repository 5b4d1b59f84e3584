package api

import "github.com/persistorai/motif/internal/domain"

// MotifService is the search backend used by MotifHandler.
type MotifService = domain.MotifService

// HostService imports and invalidates tenant host graphs for HostHandler.
type HostService = domain.HostService

// SearchHistory lists past searches for MotifHandler.History.
type SearchHistory = domain.SearchHistory
