// main.go
//
// Minimal entry point that delegates CLI handling to the Cobra root command in cmd/root.go

package main

import (
	"github.com/VanessaBorst/MACRO-Towards-Classification-of-Co-Occurring-Diseases-in-12-Lead-ECGs/cmd"
)

func main() {
	cmd.Execute()
}
