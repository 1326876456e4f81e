package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/animeverse/animeverse/color"
	"github.com/animeverse/animeverse/constant"
	"github.com/animeverse/animeverse/icon"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/style"
	"github.com/animeverse/animeverse/util"
	"github.com/spf13/viper"
)

const checkTimeout = 3 * time.Second

// Notify prints an upgrade hint to w when a newer release exists.
// Failures are silent.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(w, "\n%s New version is available %s %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(you're on %s)", constant.Version)),
		style.Faint("https://github.com/animeverse/animeverse/releases/tag/v"+latest),
	)
}
