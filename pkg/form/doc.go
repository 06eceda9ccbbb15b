// Package form holds raw applicant input and turns it into a validated,
// fully numeric Record. Raw values are stored as typed; validation never runs
// as a side effect of Set and is always recomputed from scratch, so the error
// map can never drift from the raw values it describes.
package form
