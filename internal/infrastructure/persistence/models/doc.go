// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
// - order.go: store-side models (Client, Order, ShippingAddress, LineItem)
// - routing.go: routing-side models (PlacedOrder, TimeWindow, Location)
//
// Models carry all GORM annotations and provide ToDomain/FromDomain mappers;
// repositories never hand these types across the domain boundary.
package models
