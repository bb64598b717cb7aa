/*
Package dsl provides a fluent builder for constructing machine definitions
programmatically.

It lets hosts define machines in type-safe Go instead of parsing definition
text, which is particularly useful for unit tests, generated machines and
embedding flows directly in a binary.

Example usage:

	package main

	import (
		"github.com/aretw0/ribbon/pkg/dsl"
		"github.com/aretw0/ribbon/pkg/machine"
	)

	func main() {
		m, err := dsl.New("right").
			When("right", '1').Then("right", '1', machine.MoveRight).
			When("right", '_').Then("carry", '_', machine.MoveLeft).
			When("carry", '1').Then("done", '0', machine.MoveNone).
			Build()
		if err != nil {
			// a rule was declared twice for the same (state, symbol)
		}
		_ = m // pass to ribbon.New(...)
	}
*/
package dsl
