// Package ir provides the record types shared by every other package.
//
// This package contains type definitions and identity helpers only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - A record's ID is always Fingerprint(Value) and doubles as its idempotency key
//   - Records are immutable once built; there is no update path
//   - All JSON tags use snake_case
//   - Timestamps are UTC with second precision (TimestampLayout)
package ir
