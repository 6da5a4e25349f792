package main

import (
	"os"

	"github.com/gossair/gossair/mir"
)

// writeDemoBytes lowers demoFunction and writes its encoded bytes to path,
// for tests exercising the decode subcommand against a real file.
func writeDemoBytes(path string) error {
	out, err := mir.Lower(demoFunction())
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
