// Package billing provides the invoicing side of the agency's receivables.
//
// An Invoice records a completed sale to a retail customer: its line items,
// their prices, and the declared total. Invoices are immutable once recorded;
// the declared total is validated against the sum of line totals at creation,
// and any later correction goes through the returns context instead of an
// invoice edit.
//
// Key Aggregates:
//   - Invoice: Immutable record of a billed sale with its line items
package billing
