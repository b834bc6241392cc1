// Package models defines the core domain models for the society backend.
//
// # Models
//
//   - ApartmentSettings: society-wide billing configuration (one active row)
//   - Flat: a billable unit with area and occupant count
//   - FixedExpense: a named recurring cost (monthly/quarterly/annual)
//   - WaterExpense: one record per billing period with aggregate water charges
//   - MaintenanceBill: a generated bill for one (flat, period), immutable once stored
//   - User: a member account (admin or resident)
//   - Complaint: a resident-raised issue tracked by admins
//
// # Design Principles
//
//  1. Models are plain values; validation lives on the model, persistence elsewhere
//  2. Relationships use ID strings instead of pointers to avoid circular references
//  3. Monetary amounts are plain float64; currency formatting is a presentation
//     concern applied only to bill explanation text
package models
