// Package core defines the shared language of the leaprecord system.
//
// This package contains:
//   - Entity types (Review, Employee) with assignment-time validation
//   - The persistence contract every entity mapper satisfies (Mapper, Table)
//   - Validation and persistence errors
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// Storage, transport and CLI packages depend on core, not the reverse.
package core
