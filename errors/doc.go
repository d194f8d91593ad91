/*
Package errors implements custom error interfaces for stronghold.

The idea is to reuse as many errors from this package as possible and
define custom package errors when absolutely necessary. Errors are
categorized by a root error. Each root error carries a unique code and
every error instance created during runtime should wrap one of the
declared roots. This allows exact error testing with the Is method
without giving up human readable descriptions, and it allows returning
errors to a client in a safe manner.

Extension packages declare their own roots with the Register function,
each using a code range that does not clash with any other package.
*/
package errors
