// Package main is the entry point of crsconv. It links the PROJ engine
// into the command implemented by the cmd package.
package main

import (
	"crsconv/cmd"
	"crsconv/internal/proj"
	"crsconv/internal/transform"
)

func main() {
	cmd.Execute(cmd.Deps{
		NewEngine: func() transform.Engine {
			return proj.NewEngine()
		},
		EngineVersion: func() string {
			return proj.Info().Version
		},
	})
}
