package graph

import (
	"context"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/m-saad-siddique/graphql-backend/internal/apperr"
)

// ErrorPresenter attaches the failure kind as extensions.code so clients can
// branch on it without parsing messages.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)

	if gqlErr.Extensions == nil {
		gqlErr.Extensions = map[string]interface{}{}
	}
	gqlErr.Extensions["code"] = apperr.Code(err)

	return gqlErr
}
