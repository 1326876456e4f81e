package cmd

import (
	"os"

	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/render"
	"github.com/animeverse/animeverse/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(leaderboardCmd)
	addJSONFlag(leaderboardCmd)
	leaderboardCmd.SetOut(os.Stdout)
}

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb"},
	Short:   "Show the best quiz players",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := leaderboard.OpenStore()
		handleErr(err)

		board := leaderboard.New(store, viper.GetInt(key.LeaderboardSize))
		handleErr(board.Load(cmd.Context()))

		current, err := board.LoadUser(cmd.Context())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(render.JSON(cmd.OutOrStdout(), board.Top()))
			return
		}

		cmd.Println(style.Title("Leaderboard"))
		cmd.Println()
		render.Leaderboard(cmd.OutOrStdout(), board.Top(), current)
	},
}
