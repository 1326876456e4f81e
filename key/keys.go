// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog Access - these keys configure the upstream catalog APIs and the shared request throttle.
const (
	CatalogJikanURL                = "catalog.jikan_url"
	CatalogAnilistURL              = "catalog.anilist_url"
	CatalogThrottleInterval        = "catalog.throttle_interval"
	CatalogAnilistThrottleInterval = "catalog.anilist_throttle_interval"
	CatalogTimeout                 = "catalog.timeout"
	CatalogPerPage                 = "catalog.per_page"
)

// Quiz Generation - these keys configure the text-generation service used to build quizzes.
const (
	QuizModel       = "quiz.model"
	QuizBaseURL     = "quiz.base_url"
	QuizAPIKey      = "quiz.api_key"
	QuizTemperature = "quiz.temperature"
	QuizMaxTokens   = "quiz.max_tokens"
	QuizDefaultKind = "quiz.default_kind"
)

// Leaderboard Persistence - these keys select and configure the leaderboard backend.
const (
	LeaderboardBackend   = "leaderboard.backend"
	LeaderboardRedisAddr = "leaderboard.redis_addr"
	LeaderboardSize      = "leaderboard.size"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
