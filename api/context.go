package api

import (
	"context"
	"errors"
)

type keyType string

const subjectKey keyType = "subject"

// ctxWithSubject adds the authenticated token subject to the context
func ctxWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// ctxGetSubject retrieves the authenticated token subject from the context
func ctxGetSubject(ctx context.Context) (string, error) {
	value := ctx.Value(subjectKey)
	if value == nil {
		return "", errors.New("subject not found in context")
	}
	subject, ok := value.(string)
	if !ok {
		return "", errors.New("subject is not of type `string`")
	}
	return subject, nil
}
