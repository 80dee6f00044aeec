// Package presenter decides whether storefront pages and customer emails
// carry a print link for an order, which print layout the link targets and
// which billing email, if any, travels with it so guests can open the print
// view without signing in.
//
// The presenter is constructed once with a settings snapshot, a link builder
// and a fragment renderer. Every method is a pure read over the order and the
// request; nothing is written back.
package presenter
