package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/animeverse/animeverse/color"
	"github.com/animeverse/animeverse/constant"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered config key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Section is the part of the key before the first dot.
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Env is the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type names the kind of value the field holds.
func (f *Field) Type() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "list"
	default:
		return fmt.Sprintf("%T", f.Value)
	}
}

func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Section     string `json:"section"`
		Env         string `json:"env"`
		Type        string `json:"type"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
	}{
		Key:         f.Key,
		Section:     f.Section(),
		Env:         f.Env(),
		Type:        f.Type(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
	})
}

// Default maps every key to its field.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

var fields = []Field{
	{key.CatalogJikanURL, "https://api.jikan.moe/v4", "Base URL of the Jikan (MyAnimeList) REST API"},
	{key.CatalogAnilistURL, "https://graphql.anilist.co", "Anilist GraphQL endpoint"},
	{key.CatalogThrottleInterval, 334, "Minimum gap in milliseconds between two Jikan requests.\nJikan allows 3 requests per second"},
	{key.CatalogAnilistThrottleInterval, 667, "Minimum gap in milliseconds between two Anilist requests"},
	{key.CatalogTimeout, 10, "Catalog request timeout in seconds"},
	{key.CatalogPerPage, 20, "Page size for Anilist listings"},

	{key.QuizModel, "gpt-4o", "Chat model used to generate quizzes"},
	{key.QuizBaseURL, "", "Base URL of an OpenAI-compatible API.\nLeave empty to use the official endpoint"},
	{key.QuizAPIKey, "", "API key for quiz generation.\nWhen empty, the key saved by \"animeverse quiz auth\" is used"},
	{key.QuizTemperature, 0.9, "Sampling temperature for quiz generation"},
	{key.QuizMaxTokens, 2000, "Completion token limit for quiz generation"},
	{key.QuizDefaultKind, "quick", "Quiz kind preselected in the arena.\nAvailable options are: quick, challenge, expert"},

	{key.LeaderboardBackend, "file", "Leaderboard storage backend.\nAvailable options are: file, redis"},
	{key.LeaderboardRedisAddr, "localhost:6379", "Redis address used when the leaderboard backend is redis"},
	{key.LeaderboardSize, 10, "Number of players shown on the leaderboard"},

	{key.SearchShowQuerySuggestions, true, "Suggest previous searches in shell completion"},
	{key.IconsVariant, "emoji", "Icons variant.\nAvailable options are: emoji, plain, kaomoji"},

	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Use json format for logs"},

	{key.CliColored, true, "Enable colored CLI output"},
	{key.CliVersionCheck, true, "Look for a newer release when showing the version and help"},
}

func init() {
	for _, f := range fields {
		if _, ok := Default[f.Key]; ok {
			panic("duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		if value {
			return style.Fg(color.Green)(strconv.FormatBool(value))
		}
		return style.Fg(color.Red)(strconv.FormatBool(value))
	case string:
		if value == "" {
			return style.Faint(`""`)
		}
		return style.Fg(color.Yellow)(value)
	case []string:
		return style.Fg(color.Yellow)(strings.Join(value, ", "))
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = lo.Must(template.New("field").Funcs(template.FuncMap{
	"faint":     style.Faint,
	"bold":      style.Bold,
	"key":       style.Fg(color.Purple),
	"label":     style.Fg(color.Blue),
	"highlight": highlight,
	"current":   func(k string) any { return viper.Get(k) },
}).Parse(`{{ key .Key }} {{ faint (printf "(%s)" .Type) }}
{{ faint .Description }}
{{ label "env" }}      {{ .Env }}
{{ label "current" }}  {{ highlight (current .Key) }}
{{ label "default" }}  {{ highlight .Value }}`))
