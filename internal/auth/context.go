package auth

import "context"

type ctxKey string

const contextActorKey ctxKey = "actor"

func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}

func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(contextActorKey).(*Actor)
	return actor, ok
}
