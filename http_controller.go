package auth

import (
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes are the paths the controller mounts.
type AuthControllerRoutes struct {
	SignIn         string
	StrategySignIn string
	SignOut        string
	Register       string
	Me             string
}

// AuthController exposes the authentication flows as JSON routes: direct
// sign-in, guard-driven sign-in through a login strategy, registration, and a
// token-protected session endpoint.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Config       Config
	Tokens       TokenService
	Strategy     LoginStrategy
	Routes       *AuthControllerRoutes
	Auther       HTTPAuthenticator
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

// WithControllerLogger sets the controller logger.
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithControllerRepo sets the repository manager used for registration.
func WithControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

// WithControllerAuther sets the HTTP authenticator.
func WithControllerAuther(auther HTTPAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithControllerConfig sets the auth configuration.
func WithControllerConfig(cfg Config) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Config = cfg
		return c
	}
}

// WithControllerTokenService sets the token service used by the strategy
// sign-in route to issue tokens after the guard verified the credentials.
func WithControllerTokenService(tokens TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

// WithControllerStrategy sets the login strategy for the guard-driven route.
func WithControllerStrategy(strategy LoginStrategy) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Strategy = strategy
		return c
	}
}

// WithControllerDebug toggles payload dumps on sign-in.
func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// WithControllerRoutes overrides the mounted paths.
func WithControllerRoutes(routes *AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if routes != nil {
			c.Routes = routes
		}
		return c
	}
}

// WithControllerErrorHandler overrides error rendering.
func WithControllerErrorHandler(handler router.ErrorHandler) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if handler != nil {
			c.ErrorHandler = handler
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &AuthControllerRoutes{
			SignIn:         "/auth/signin",
			StrategySignIn: "/auth/strategy/signin",
			SignOut:        "/auth/signout",
			Register:       "/auth/register",
			Me:             "/auth/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	if c.Config == nil {
		panic("Missing Config in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the auth endpoints on the given router. The
// strategy sign-in route is mounted only when a strategy and token service are
// configured; the session endpoint sits behind the protected-route middleware.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.
		Post(controller.Routes.SignIn, controller.SignIn).
		SetName("auth.signin")

	app.
		Post(controller.Routes.Register, controller.Register).
		SetName("auth.register")

	app.
		Post(controller.Routes.SignOut, controller.SignOut).
		SetName("auth.signout")

	if controller.Strategy != nil && controller.Tokens != nil {
		guard := NewGuard(
			NewStrategyRequestVerifier(controller.Strategy),
			WithGuardContextKey(controller.Config.GetContextKey()),
			WithGuardLogger(controller.Logger),
		)
		app.
			Post(controller.Routes.StrategySignIn, guard.Middleware()(controller.StrategySignIn)).
			SetName("auth.signin.strategy")
	}

	protected := controller.Auther.ProtectedRoute(controller.Config, nil)
	app.
		Get(controller.Routes.Me, protected(controller.Me)).
		SetName("auth.me")
}

// SignIn verifies the posted credentials and answers with a signed token.
// A missing account and a wrong password produce distinct responses.
func (a *AuthController) SignIn(ctx router.Context) error {
	payload := new(SignInPayload)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "unable to parse sign-in payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryValidation, "invalid sign-in payload").
			WithCode(errors.CodeBadRequest))
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	token, err := a.Auther.Login(ctx, payload)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   a.Config.GetAuthScheme(),
	})
}

// StrategySignIn issues a token for the identity the guard already attached.
// Credential verification happened in the middleware, not here.
func (a *AuthController) StrategySignIn(ctx router.Context) error {
	identity, ok := GetRouterIdentity(ctx, a.Config.GetContextKey())
	if !ok {
		return a.ErrorHandler(ctx, ErrUnableToFindSession)
	}

	token, err := a.Tokens.Generate(identity)
	if err != nil {
		a.Logger.Error("strategy sign-in token generation: %s", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   a.Config.GetAuthScheme(),
	})
}

// SignOut clears the session cookie.
func (a *AuthController) SignOut(ctx router.Context) error {
	a.Auther.Logout(ctx)
	return ctx.JSON(router.StatusOK, map[string]any{
		"status": "signed out",
	})
}

// Register creates a new account from the posted payload.
func (a *AuthController) Register(ctx router.Context) error {
	payload := new(CreateUserPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register user parse payload: ", "error", err)
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "unable to parse registration payload").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload: ", "error", err)
		return a.ErrorHandler(ctx, errors.Wrap(err, errors.CategoryValidation, "invalid registration payload").
			WithCode(errors.CodeBadRequest))
	}

	registerUser := NewRegisterUserHandler(a.Repo)
	if err := registerUser.Execute(ctx.Context(), payload.Message()); err != nil {
		a.Logger.Error("register user: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"status": "registered",
	})
}

// Me answers with the session decoded from the caller's token.
func (a *AuthController) Me(ctx router.Context) error {
	session, err := GetRouterSession(ctx, a.Config.GetContextKey())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if a.Debug {
		fmt.Println("======= AUTH SESSION ====")
		fmt.Println(print.MaybePrettyJSON(session))
		fmt.Println("=========================")
	}

	return ctx.JSON(router.StatusOK, session)
}

// defaultErrHandler maps the error taxonomy onto JSON responses. Credential
// failures keep their category distinction: a missing account is 404, a wrong
// password is 401.
func defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return c.JSON(errors.CodeUnauthorized, map[string]any{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		})
	case errors.CategoryNotFound:
		return c.JSON(errors.CodeNotFound, map[string]any{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		})
	case errors.CategoryConflict:
		return c.JSON(errors.CodeConflict, map[string]any{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		})
	case errors.CategoryValidation, errors.CategoryBadInput:
		return c.JSON(errors.CodeBadRequest, map[string]any{
			"error":     richErr.Message,
			"text_code": richErr.TextCode,
		})
	default:
		return c.JSON(errors.CodeInternal, map[string]any{
			"error": "internal error",
		})
	}
}
