// grdecl extracts keyword sections from Eclipse/GRDECL reservoir grid files.
package main

import (
	"os"

	"github.com/lanhill/grdecl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
