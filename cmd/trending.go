package cmd

import (
	"context"

	"github.com/animeverse/animeverse/card"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(trendingCmd)
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show what is trending on Anilist",
}

func init() {
	trendingCmd.AddCommand(trendingAnimeCmd)
	addListingFlags(trendingAnimeCmd)
}

var trendingAnimeCmd = &cobra.Command{
	Use:   "anime",
	Short: "Show trending anime",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			l      = listingFlags(cmd)
			client = newAnilist()
			size   = perPage()
		)

		done := progress(l, "Fetching trending anime...")
		items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Anime], error) {
			return client.TrendingAnime(ctx, page, size)
		})
		done()
		handleErr(err)
		handleErr(printAnimeList(cmd.OutOrStdout(), l, items, last))
	},
}

func init() {
	trendingCmd.AddCommand(trendingMangaCmd)
	addListingFlags(trendingMangaCmd)
}

var trendingMangaCmd = &cobra.Command{
	Use:   "manga",
	Short: "Show trending manga",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			l      = listingFlags(cmd)
			client = newAnilist()
			size   = perPage()
		)

		done := progress(l, "Fetching trending manga...")
		items, last, err := fetchPages(cmd.Context(), l, func(ctx context.Context, page int) (card.Page[card.Manga], error) {
			return client.TrendingManga(ctx, page, size)
		})
		done()
		handleErr(err)
		handleErr(printMangaList(cmd.OutOrStdout(), l, items, last))
	},
}
