package cmd

import (
	"fmt"

	"github.com/kiosk404/pluginadm/pkg/version"
)

const bannerText = `
        _             _                 _
  _ __ | |_   _  __ _(_)_ __   __ _  __| |_ __ ___
 | '_ \| | | | |/ _` + "`" + ` | | '_ \ / _` + "`" + ` |/ _` + "`" + ` | '_ ` + "`" + ` _ \
 | |_) | | |_| | (_| | | | | | (_| | (_| | | | | | |
 | .__/|_|\__,_|\__, |_|_| |_|\__,_|\__,_|_| |_| |_|
 |_|            |___/

        Site plugin administration
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
