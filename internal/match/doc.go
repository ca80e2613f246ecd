// Package match pairs property names that differ only in case or separators,
// e.g. "OrderID", "order_id" and "orderId".
package match
