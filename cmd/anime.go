package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/jikan"
	"github.com/animeverse/animeverse/log"
	"github.com/animeverse/animeverse/open"
	"github.com/animeverse/animeverse/query"
	"github.com/animeverse/animeverse/render"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(animeCmd)
}

var animeCmd = &cobra.Command{
	Use:     "anime",
	Aliases: []string{"a"},
	Short:   "Browse the anime catalog",
}

func init() {
	animeCmd.AddCommand(animeTopCmd)
	addListingFlags(animeTopCmd)
	animeTopCmd.Flags().StringP("type", "t", "", "Restrict to a format: tv, movie, ova, special, ona, music")
}

var animeTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the highest ranked anime",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			l      = listingFlags(cmd)
			kind   = lo.Must(cmd.Flags().GetString("type"))
			client = newJikan()
		)

		done := progress(l, "Fetching top anime...")
		items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Anime], error) {
			return client.TopAnime(ctx, page, kind)
		})
		done()
		handleErr(err)
		handleErr(printAnimeList(cmd.OutOrStdout(), l, items, last))
	},
}

func init() {
	animeCmd.AddCommand(animeSeasonCmd)
	addListingFlags(animeSeasonCmd)
	animeSeasonCmd.Flags().IntP("year", "y", 0, "Season year, defaults to the current one")
	animeSeasonCmd.Flags().StringP("season", "s", "", "winter, spring, summer or fall, defaults to the current one")
	lo.Must0(animeSeasonCmd.RegisterFlagCompletionFunc("season", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(jikan.Seasons, func(s jikan.Season, _ int) string {
			return string(s)
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

var animeSeasonCmd = &cobra.Command{
	Use:   "season",
	Short: "Show the anime airing in a season",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			l      = listingFlags(cmd)
			client = newJikan()
		)

		year, season := jikan.CurrentSeason(time.Now())
		if y := lo.Must(cmd.Flags().GetInt("year")); y > 0 {
			year = y
		}
		if s := lo.Must(cmd.Flags().GetString("season")); s != "" {
			parsed, err := jikan.ParseSeason(s)
			handleErr(err)
			season = parsed
		}

		done := progress(l, "Fetching seasonal anime...")
		items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Anime], error) {
			return client.SeasonalAnime(ctx, page, year, season)
		})
		done()
		handleErr(err)
		handleErr(printAnimeList(cmd.OutOrStdout(), l, items, last))
	},
}

func init() {
	animeCmd.AddCommand(animeSearchCmd)
	addListingFlags(animeSearchCmd)
	animeSearchCmd.Flags().StringP("genre", "g", "", "Restrict to a genre, by name or id")
	lo.Must0(animeSearchCmd.RegisterFlagCompletionFunc("genre", completeGenres))
}

var animeSearchCmd = &cobra.Command{
	Use:               "search <query>",
	Short:             "Search anime by title",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeQuery(query.Anime),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			l      = listingFlags(cmd)
			q      = strings.Join(args, " ")
			genre  = lo.Must(cmd.Flags().GetString("genre"))
			client = newJikan()
		)

		done := progress(l, "Searching...")
		items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Anime], error) {
			return client.SearchAnime(ctx, q, page, genre)
		})
		done()
		handleErr(err)
		rememberQuery(query.Anime, q)
		handleErr(printAnimeList(cmd.OutOrStdout(), l, items, last))
	},
}

func init() {
	animeCmd.AddCommand(animeShowCmd)
	addJSONFlag(animeShowCmd)
	addSourceFlag(animeShowCmd)
	animeShowCmd.Flags().BoolP("trailer", "o", false, "Open the trailer in the browser")
}

var animeShowCmd = &cobra.Command{
	Use:   "show <id|title>",
	Short: "Show the details of an anime",
	Long: "Show the details of an anime by id.\n" +
		"With --source anilist a title is also accepted and resolved to the closest match.",
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := sourceFlag(cmd)
		handleErr(err)

		var a card.Anime
		switch source {
		case sourceAnilist:
			a, err = anilistAnime(cmd.Context(), strings.Join(args, " "))
		default:
			var id int
			id, err = parseID(args[0])
			handleErr(err)

			var details *jikan.Anime
			details, err = newJikan().AnimeDetails(cmd.Context(), id)
			if err == nil {
				a = jikan.AnimeCard(details)
			}
		}
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("trailer")) {
			trailer, ok := a.Trailer.Get()
			if !ok {
				handleErr(fmt.Errorf("%s has no trailer", a.Title))
			}
			handleErr(open.Start(trailer))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(render.JSON(cmd.OutOrStdout(), a))
			return
		}
		render.Anime(cmd.OutOrStdout(), a)
	},
}

// anilistAnime looks arg up by id, or by closest title when it is not a number.
func anilistAnime(ctx context.Context, arg string) (card.Anime, error) {
	client := newAnilist()

	if id, err := parseID(arg); err == nil {
		media, err := client.AnimeDetails(ctx, id)
		if err != nil {
			return card.Anime{}, err
		}
		return media.AnimeCard(), nil
	}

	media, err := client.Closest(ctx, arg)
	if err != nil {
		return card.Anime{}, err
	}
	return media.AnimeCard(), nil
}

func init() {
	animeCmd.AddCommand(animeRandomCmd)
	addJSONFlag(animeRandomCmd)
}

var animeRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random anime",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newJikan().RandomAnime(cmd.Context())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(render.JSON(cmd.OutOrStdout(), a))
			return
		}
		render.Anime(cmd.OutOrStdout(), a)
	},
}

func init() {
	animeCmd.AddCommand(animeCharactersCmd)
	addJSONFlag(animeCharactersCmd)
}

var animeCharactersCmd = &cobra.Command{
	Use:     "characters <id>",
	Aliases: []string{"cast"},
	Short:   "Show the characters of an anime",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		handleErr(err)

		cast, err := newJikan().AnimeCharacters(cmd.Context(), id)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(render.JSON(cmd.OutOrStdout(), cast))
			return
		}
		render.Characters(cmd.OutOrStdout(), cast)
	},
}

func completeGenres(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(jikan.Genres, func(g jikan.Genre, _ int) string {
		return g.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

func rememberQuery(scope query.Scope, q string) {
	if err := query.Remember(scope, q); err != nil {
		// history is best effort
		log.Warnf("remembering query: %v", err)
	}
}
