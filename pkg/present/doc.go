// Package present turns predictions, inputs and history into the data the
// dashboard surfaces draw: the risk gauge, the applicant-vs-mean bars and the
// history series. Colours come from a go-theme manifest so variants can
// restyle every surface at once.
package present
