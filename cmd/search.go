package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/query"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	addListingFlags(searchCmd)
	addSourceFlag(searchCmd)
	searchCmd.Flags().BoolP("manga", "m", false, "Search manga instead of anime")
	searchCmd.Flags().StringP("genre", "g", "", "Restrict to a genre, by name or id (jikan only)")
	lo.Must0(searchCmd.RegisterFlagCompletionFunc("genre", completeGenres))
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search anime or manga on either catalog",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if lo.Must(cmd.Flags().GetBool("manga")) {
			return completeQuery(query.Manga)(cmd, args, toComplete)
		}
		return completeQuery(query.Anime)(cmd, args, toComplete)
	},
	Run: func(cmd *cobra.Command, args []string) {
		source, err := sourceFlag(cmd)
		handleErr(err)

		var (
			l     = listingFlags(cmd)
			q     = strings.Join(args, " ")
			manga = lo.Must(cmd.Flags().GetBool("manga"))
			genre = lo.Must(cmd.Flags().GetString("genre"))
		)

		if genre != "" && source == sourceAnilist {
			handleErr(errors.New("--genre is only supported by the jikan source"))
		}

		done := progress(l, "Searching...")
		switch {
		case manga && source == sourceAnilist:
			client, size := newAnilist(), perPage()
			items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Manga], error) {
				return client.SearchManga(ctx, q, page, size)
			})
			done()
			handleErr(err)
			rememberQuery(query.Manga, q)
			handleErr(printMangaList(cmd.OutOrStdout(), l, items, last))
		case manga:
			client := newJikan()
			items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Manga], error) {
				return client.SearchManga(ctx, q, page, genre)
			})
			done()
			handleErr(err)
			rememberQuery(query.Manga, q)
			handleErr(printMangaList(cmd.OutOrStdout(), l, items, last))
		case source == sourceAnilist:
			client, size := newAnilist(), perPage()
			items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Anime], error) {
				return client.SearchAnime(ctx, q, page, size)
			})
			done()
			handleErr(err)
			rememberQuery(query.Anime, q)
			handleErr(printAnimeList(cmd.OutOrStdout(), l, items, last))
		default:
			client := newJikan()
			items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Anime], error) {
				return client.SearchAnime(ctx, q, page, genre)
			})
			done()
			handleErr(err)
			rememberQuery(query.Anime, q)
			handleErr(printAnimeList(cmd.OutOrStdout(), l, items, last))
		}
	},
}
