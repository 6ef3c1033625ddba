package runner

import (
	"github.com/projectdiscovery/gologger"
	updateutils "github.com/projectdiscovery/utils/update"
)

var banner = `
                        __      __
  ________  ____ ___  __/ /___ _/ /_____  _____
 / ___/ _ \/ __ '/ / / / / __ '/ __/ __ \/ ___/
/ /  /  __/ /_/ / /_/ / / /_/ / /_/ /_/ / /
/_/   \___/\__, /\__,_/_/\__,_/\__/\____/_/
          /____/
`

var version = "v0.0.1"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}

// GetUpdateCallback returns a callback function that updates regulator
func GetUpdateCallback() func() {
	return func() {
		showBanner()
		updateutils.GetUpdateToolCallback("regulator", version)()
	}
}
