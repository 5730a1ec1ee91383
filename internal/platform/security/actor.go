// Package security carries the identity of the caller through context.Context.
package security

import "context"

// Principal is the authenticated identity as issued in the access token.
type Principal struct {
	Username string
}

// Actor describes who is making the current call.
type Actor struct {
	Authenticated bool
	Anonymous     bool
	Name          string
	UserID        int64
	Principal     *Principal
}

// AnonymousActor is the actor of a request that carried no valid token.
var AnonymousActor = Actor{Anonymous: true, Name: "anonymousUser"}

type actorKey struct{}

// WithActor returns a copy of ctx carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// CurrentActor returns the actor stored in ctx and whether one was present.
func CurrentActor(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// Identity returns the user id and email of an authenticated, non-anonymous
// actor. Both are nil for anyone else.
func (a Actor) Identity() (*int64, *string) {
	if !a.Authenticated || a.Anonymous {
		return nil, nil
	}
	var id *int64
	if a.UserID > 0 {
		uid := a.UserID
		id = &uid
	}
	email := a.Name
	if a.Principal != nil && a.Principal.Username != "" {
		email = a.Principal.Username
	}
	if email == "" {
		return id, nil
	}
	return id, &email
}
