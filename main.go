package main

import (
	"github.com/animeverse/animeverse/cmd"
	"github.com/animeverse/animeverse/config"
	"github.com/animeverse/animeverse/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
