// Package kernel provides the shared value objects of the pizzeria domain.
//
// The package includes:
//   - UUID: identifier for every entity and reference, serialized as a string
//   - GeoPoint: latitude/longitude with haversine distance, used for zone coverage
//
// Both are immutable and safe for concurrent use. Their zero values are
// invalid and fail Validate.
package kernel
