// Package template defines the contract the HTML dashboard uses to render
// named templates, independent of the engine behind it.
package template
