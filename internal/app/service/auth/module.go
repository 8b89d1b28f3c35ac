package auth

import "go.uber.org/fx"

// Module exposes the auth service via Fx.
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewService, fx.As(new(Authenticator)))),
)
