// Command schooldesk runs the SchoolDesk navigation shell and theme service.
package main

import (
	"os"

	"github.com/HerbHall/schooldesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
