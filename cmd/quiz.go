package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/animeverse/animeverse/auth"
	"github.com/animeverse/animeverse/color"
	"github.com/animeverse/animeverse/icon"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/leaderboard"
	"github.com/animeverse/animeverse/log"
	"github.com/animeverse/animeverse/quiz"
	"github.com/animeverse/animeverse/style"
	"github.com/animeverse/animeverse/tui"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func addQuizFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("kind", "k", "", "Start a quiz right away: quick, challenge or expert")
	cmd.Flags().StringP("user", "u", "", "Play as this user instead of being asked")
	cmd.Flags().BoolP("ephemeral", "e", false, "Keep this session's scores in memory only")
	lo.Must0(cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(quiz.Kinds, func(k quiz.Kind, _ int) string {
			return string(k)
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// runArena opens the quiz arena with the options given on cmd.
func runArena(cmd *cobra.Command) {
	options := tui.Options{
		Username:   lo.Must(cmd.Flags().GetString("user")),
		Credential: auth.APIKey(),
		Generator:  quiz.NewLLMGenerator(),
		Size:       viper.GetInt(key.LeaderboardSize),
	}

	if k := lo.Must(cmd.Flags().GetString("kind")); k != "" {
		kind, err := quiz.ParseKind(k)
		handleErr(err)
		options.Kind = mo.Some(kind)
	} else if kind, err := quiz.ParseKind(viper.GetString(key.QuizDefaultKind)); err == nil {
		options.Preselect = kind
	} else {
		log.Warnf("ignoring %s: %v", key.QuizDefaultKind, err)
	}

	if lo.Must(cmd.Flags().GetBool("ephemeral")) {
		options.Store = leaderboard.NewMemoryStore()
	} else {
		store, err := leaderboard.OpenStore()
		handleErr(err)
		options.Store = store
	}

	handleErr(tui.Run(&options))
}

func init() {
	rootCmd.AddCommand(quizCmd)
	addQuizFlags(quizCmd)
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play timed anime trivia in the quiz arena",
	Long: `Play timed anime trivia in the quiz arena.

Quick quizzes last 1 minute, challenge quizzes 3 minutes and expert quizzes 5 minutes.
Every correct answer is worth 10 XP on the leaderboard.
Questions are generated by an OpenAI-compatible API, see "quiz auth".`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runArena(cmd)
	},
}

func init() {
	quizCmd.AddCommand(quizAuthCmd)
}

var quizAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Save the API key used to generate quizzes",
	Long:  "Save the API key used to generate quizzes to the system keyring.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var apiKey string
		handleErr(survey.AskOne(&survey.Password{
			Message: "API key:",
			Help:    "The key is kept in the system keyring. It can also be set with the " + key.QuizAPIKey + " config key.",
		}, &apiKey, survey.WithValidator(survey.Required)))

		handleErr(auth.SetAPIKey(apiKey))
		fmt.Printf("%s API key saved\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	quizCmd.AddCommand(quizLogoutCmd)
	quizLogoutCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var quizLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved API key",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: "Remove the saved API key?",
				Default: false,
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		handleErr(auth.DeleteAPIKey())
		fmt.Printf("%s API key removed\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
