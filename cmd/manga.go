package cmd

import (
	"context"
	"strings"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/jikan"
	"github.com/animeverse/animeverse/query"
	"github.com/animeverse/animeverse/render"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(mangaCmd)
}

var mangaCmd = &cobra.Command{
	Use:     "manga",
	Aliases: []string{"m"},
	Short:   "Browse the manga catalog",
}

func init() {
	mangaCmd.AddCommand(mangaTopCmd)
	addListingFlags(mangaTopCmd)
	mangaTopCmd.Flags().StringP("type", "t", "", "Restrict to a format: manga, novel, lightnovel, oneshot, doujin, manhwa, manhua")
}

var mangaTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the highest ranked manga",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			l      = listingFlags(cmd)
			kind   = lo.Must(cmd.Flags().GetString("type"))
			client = newJikan()
		)

		done := progress(l, "Fetching top manga...")
		items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Manga], error) {
			return client.TopManga(ctx, page, kind)
		})
		done()
		handleErr(err)
		handleErr(printMangaList(cmd.OutOrStdout(), l, items, last))
	},
}

func init() {
	mangaCmd.AddCommand(mangaSearchCmd)
	addListingFlags(mangaSearchCmd)
	mangaSearchCmd.Flags().StringP("genre", "g", "", "Restrict to a genre, by name or id")
	lo.Must0(mangaSearchCmd.RegisterFlagCompletionFunc("genre", completeGenres))
}

var mangaSearchCmd = &cobra.Command{
	Use:               "search <query>",
	Short:             "Search manga by title",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeQuery(query.Manga),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			l      = listingFlags(cmd)
			q      = strings.Join(args, " ")
			genre  = lo.Must(cmd.Flags().GetString("genre"))
			client = newJikan()
		)

		done := progress(l, "Searching...")
		items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Manga], error) {
			return client.SearchManga(ctx, q, page, genre)
		})
		done()
		handleErr(err)
		rememberQuery(query.Manga, q)
		handleErr(printMangaList(cmd.OutOrStdout(), l, items, last))
	},
}

func init() {
	mangaCmd.AddCommand(mangaShowCmd)
	addJSONFlag(mangaShowCmd)
}

var mangaShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the details of a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		handleErr(err)

		details, err := newJikan().MangaDetails(cmd.Context(), id)
		handleErr(err)
		m := jikan.MangaCard(details)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(render.JSON(cmd.OutOrStdout(), m))
			return
		}
		render.Manga(cmd.OutOrStdout(), m)
	},
}

func init() {
	mangaCmd.AddCommand(mangaRandomCmd)
	addJSONFlag(mangaRandomCmd)
}

var mangaRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random manga",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newJikan().RandomManga(cmd.Context())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(render.JSON(cmd.OutOrStdout(), m))
			return
		}
		render.Manga(cmd.OutOrStdout(), m)
	},
}
