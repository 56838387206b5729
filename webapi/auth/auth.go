package auth

import (
	authsvc "github.com/cardex/cardex/pkg/service/auth"
	"github.com/cardex/cardex/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))
	app.Post("/auth/logout", Logout())
}

// Register creates a new account and returns it with a signed token.
// @Summary Register a new user
// @Description Create an account with a unique username; the starting balance is credited automatically
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Registration data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := authSvc.Register(c.Context(), input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register user", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered",
			fiber.Map{"user": u, "token": token})
	}
}

// Login authenticates a user and returns a JWT token.
// @Summary User login
// @Description Authenticate with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 500 {object} common.ProblemDetails
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // error response already written
		}
		u, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid username or password", nil,
				"Username or password is incorrect", fiber.StatusUnauthorized)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}

// Logout acknowledges a logout. Tokens are stateless; the client discards it.
// @Summary User logout
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Router /auth/logout [post]
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Logged out", nil)
	}
}
