package sharedtypes

// UserID identifies a member across every module.
type UserID string

// ActivityID identifies a boost, challenge, quest week, or contest activity
// in the activity catalog.
type ActivityID string

// ContestID is the canonical (UUID text) identifier of a contest.
type ContestID string

// CommunityID identifies a community for community-restricted contests and
// community-scoped leaderboards.
type CommunityID string

// Category groups catalog activities (e.g. "nutrition", "movement").
type Category string

// Tier is the content unlock level. Tier 0 is always available, Tier 1
// unlocks after the designated Tier-0 activity, Tier 2 per category after
// the full Tier-1 set of that category.
type Tier int

const (
	Tier0 Tier = 0
	Tier1 Tier = 1
	Tier2 Tier = 2
)

// FuelPoints is the scoring currency earned from completions and milestones.
type FuelPoints int

// ActivityKind distinguishes the three progression shapes.
type ActivityKind string

const (
	ActivityKindChallenge ActivityKind = "challenge"
	ActivityKindQuest     ActivityKind = "quest"
	ActivityKindContest   ActivityKind = "contest"
)

// Cadence is the temporal gate applied to repeat completions of an activity.
type Cadence string

const (
	// CadenceDaily allows at most one qualifying completion per calendar day.
	CadenceDaily Cadence = "daily"
	// CadenceWeekly requires seven days between completions (quest weekly actions).
	CadenceWeekly Cadence = "weekly"
	// CadenceNone applies no temporal gate (contest verifications).
	CadenceNone Cadence = "none"
)

// LeaderboardScope selects which ranked population a query covers.
type LeaderboardScope string

const (
	ScopeGlobal    LeaderboardScope = "global"
	ScopeCommunity LeaderboardScope = "community"
	ScopeContest   LeaderboardScope = "contest"
)
