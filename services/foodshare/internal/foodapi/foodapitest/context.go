package foodapitest

import "context"

type bodyKey struct{}

func withBody(ctx context.Context, body map[string]interface{}) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyFrom(ctx context.Context) map[string]interface{} {
	body, _ := ctx.Value(bodyKey{}).(map[string]interface{})
	return body
}
