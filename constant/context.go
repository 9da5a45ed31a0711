package constant

type ContextKey string

// ActorIDKey carries the authenticated caller's ID for ledger attribution.
const ActorIDKey ContextKey = "actor_id"
