// Package structs defines the dashboard domain models and the request inputs
// sent to the API. Inputs carry validate tags checked by
// validation/validator before submission; msg tags hold the pt-BR message
// shown for a failed rule.
package structs
