// Package kernel contains shared value objects used across the domain model:
// identifiers, money amounts, and the cart owner variant. All types in this
// package are immutable and must be created through their constructor
// functions; zero values fail validation.
package kernel
