package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/animeverse/animeverse/anilist"
	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/icon"
	"github.com/animeverse/animeverse/jikan"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/network"
	"github.com/animeverse/animeverse/query"
	"github.com/animeverse/animeverse/render"
	"github.com/animeverse/animeverse/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	sourceJikan   = "jikan"
	sourceAnilist = "anilist"
)

var sources = []string{sourceJikan, sourceAnilist}

// listing holds the paging flags shared by every list command.
type listing struct {
	page  int
	pages int
	json  bool
}

func addListingFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("page", "p", 1, "Page to start from")
	cmd.Flags().IntP("pages", "n", 1, "Number of consecutive pages to show")
	addJSONFlag(cmd)
}

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false, "Print JSON instead of text")
}

func addSourceFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", sourceJikan, "Catalog to query: jikan or anilist")
	lo.Must0(cmd.RegisterFlagCompletionFunc("source", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return sources, cobra.ShellCompDirectiveNoFileComp
	}))
}

func listingFlags(cmd *cobra.Command) listing {
	return listing{
		page:  util.Max(lo.Must(cmd.Flags().GetInt("page")), 1),
		pages: util.Max(lo.Must(cmd.Flags().GetInt("pages")), 1),
		json:  lo.Must(cmd.Flags().GetBool("json")),
	}
}

func sourceFlag(cmd *cobra.Command) (string, error) {
	source := lo.Must(cmd.Flags().GetString("source"))
	if !lo.Contains(sources, source) {
		return "", fmt.Errorf("unknown source %q, expected one of %v", source, sources)
	}
	return source, nil
}

func catalogHTTP() *http.Client {
	return network.New(time.Duration(viper.GetInt(key.CatalogTimeout)) * time.Second)
}

func newJikan() *jikan.Client {
	return jikan.New(jikan.WithHTTPClient(catalogHTTP()))
}

func newAnilist() *anilist.Client {
	return anilist.New(anilist.WithHTTPClient(catalogHTTP()))
}

func perPage() int {
	return util.Max(viper.GetInt(key.CatalogPerPage), 1)
}

// fetchPages walks consecutive pages from l.page, stopping early when upstream has no more.
// The last fetched page is returned for the continuation hint.
func fetchPages[T any](ctx context.Context, l listing, fetch func(ctx context.Context, page int) (card.Page[T], error)) ([]T, card.Page[T], error) {
	var (
		shown []T
		last  card.Page[T]
	)

	for i := 0; i < l.pages; i++ {
		p, err := fetch(ctx, l.page+i)
		if err != nil {
			return nil, last, err
		}

		shown = p.Accumulate(shown)
		last = p

		if !p.HasNextPage {
			break
		}
	}

	return shown, last, nil
}

// progress shows a transient status line unless the output is JSON.
func progress(l listing, msg string) func() {
	if l.json {
		return func() {}
	}
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), msg))
}

func printAnimeList(w io.Writer, l listing, items []card.Anime, last card.Page[card.Anime]) error {
	if l.json {
		return render.JSON(w, items)
	}
	render.AnimeList(w, items)
	render.More(w, len(items), last.Page, last.HasNextPage)
	return nil
}

func printMangaList(w io.Writer, l listing, items []card.Manga, last card.Page[card.Manga]) error {
	if l.json {
		return render.JSON(w, items)
	}
	render.MangaList(w, items)
	render.More(w, len(items), last.Page, last.HasNextPage)
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q, expected a positive number", arg)
	}
	return id, nil
}

func completeQuery(scope query.Scope) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.Suggest(scope, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}
