package model

// ActorContext identifies who performs a mutating call. It is supplied by the
// caller (HTTP middleware or test) rather than read from process-wide state,
// so real multi-user auth can slot in without touching the services.
type ActorContext struct {
	UserID string
}
