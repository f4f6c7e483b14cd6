// Package services provides domain services of the pizzeria that do not
// belong to a single aggregate.
//
// The package includes:
//   - PricingEngine: resolves unit prices for requested lines against a PriceBook
//   - ZoneMatcher: picks the delivery zone covering an address
//   - CourierSelector: picks the least-loaded courier among zone candidates
//
// All three are pure: they compute from their inputs and never persist.
package services
