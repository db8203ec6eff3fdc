// Command activities serves the extracurricular activity signup API.
package main

import "github.com/joeydtaylor/steeze-activities/pkg/serverfx"

func main() {
	serverfx.Run(serverfx.DefaultOptions())
}
