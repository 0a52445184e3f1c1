// moaitime - print time estimation for SLA gcode
//
// moaitime adds the per-layer change overhead that slicers leave out of their
// estimates and reports laser time, layer change time and the total.
package main

import (
	"os"

	"github.com/ccollicutt/moaitime/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
