// Package nsid implements the Main dataset convention on top of hstore.
//
// A Main dataset is an N-dimensional dataset with one dimension scale
// attached per axis and six descriptive string attributes. Whether a
// dataset is Main is always derived from what is stored; nothing records
// it as a flag.
//
// Validation entry points (IsMain, CheckMain, ValidateScale, Reconcile)
// report content problems as values. LinkAsMain validates every axis
// before it writes anything and links all axes in one transaction.
package nsid
