package auth

import (
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"

	"github.com/bookverse/backend/rest"
)

// Controller serves the /api/auth HTTP surface.
type Controller struct {
	auther    Authenticator
	users     Users
	tokens    TokenService
	cookieTTL time.Duration
	logger    Logger
}

// NewController wires the auth endpoints. cookieTTL should match the
// token lifetime so the cookie and the token expire together.
func NewController(auther Authenticator, users Users, tokens TokenService, cookieTTL time.Duration) *Controller {
	return &Controller{
		auther:    auther,
		users:     users,
		tokens:    tokens,
		cookieTTL: cookieTTL,
		logger:    defLogger{},
	}
}

func (ct *Controller) WithLogger(logger Logger) *Controller {
	ct.logger = logger
	return ct
}

// RegisterRoutes mounts the auth surface. Register and login stay open;
// everything else sits behind the auth gate except validate, which does
// its own cookie-only check.
func (ct *Controller) RegisterRoutes(app *fiber.App) {
	gate := RequireAuth(ct.auther, ct.tokens)

	grp := app.Group("/api/auth")
	grp.Post("/register/", ct.Register)
	grp.Post("/login/", ct.Login)
	grp.Post("/logout/", gate, ct.Logout)
	grp.Get("/user/", gate, ct.ListUsers)
	grp.Delete("/delete/", gate, ct.Delete)
	grp.Get("/validate/", ct.Validate)
}

// Register handles POST /api/auth/register/.
func (ct *Controller) Register(c *fiber.Ctx) error {
	payload := new(RegisterInput)
	if err := c.BodyParser(payload); err != nil {
		return rest.Fail(c, http.StatusBadRequest, "Invalid data", "malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return rest.Fail(c, http.StatusBadRequest, "Invalid data", err)
	}

	user, token, err := ct.auther.Register(c.UserContext(), *payload)
	if err != nil {
		ct.logger.Info("Registration rejected", "email", payload.Email, "error", err)
		return rest.FailFromError(c, err)
	}

	ct.setTokenCookie(c, token)
	return rest.Created(c, "User registered successfully", user.Profile())
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login handles POST /api/auth/login/.
func (ct *Controller) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return rest.Fail(c, http.StatusBadRequest, "Invalid data", "malformed request body")
	}

	if err := payload.Validate(); err != nil {
		return rest.Fail(c, http.StatusBadRequest, "Invalid data", err)
	}

	user, token, err := ct.auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return rest.FailFromError(c, err)
	}

	ct.setTokenCookie(c, token)
	return rest.OK(c, "User logged in successfully", user.Profile())
}

// Logout handles POST /api/auth/logout/. The gate already checked the
// session; logging out is clearing the cookie, there is no server-side
// token state to revoke.
func (ct *Controller) Logout(c *fiber.Ctx) error {
	ct.clearTokenCookie(c)
	return rest.OK(c, "User logged out successfully", nil)
}

// ListUsers handles GET /api/auth/user/: filtered, paginated profiles.
func (ct *Controller) ListUsers(c *fiber.Ctx) error {
	filter := UserFilter{
		Email:     c.Query("email"),
		FirstName: c.Query("firstname"),
		LastName:  c.Query("lastname"),
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return rest.Fail(c, http.StatusBadRequest, "Invalid data", "userId must be an integer")
		}
		filter.ID = id
	}

	page := rest.PageRequestFromQuery(c)

	records, total, err := ct.users.Find(c.UserContext(), filter, page.Size, page.Offset())
	if err != nil {
		ct.logger.Error("User listing failed", "error", err)
		return rest.FailFromError(c, err)
	}

	if total == 0 {
		return rest.Fail(c, http.StatusNotFound, "User not found", nil)
	}

	return rest.Page(c, "Data retrieved successfully", rest.NewPagination(page, total), Profiles(records))
}

// Delete handles DELETE /api/auth/delete/ by id or email query param.
func (ct *Controller) Delete(c *fiber.Ctx) error {
	rawID := c.Query("id")
	email := c.Query("email")

	if rawID == "" && email == "" {
		return rest.Fail(c, http.StatusBadRequest, "Invalid data", "either id or email query parameter is required")
	}

	var removed bool
	var err error

	if rawID != "" {
		id, perr := strconv.ParseInt(rawID, 10, 64)
		if perr != nil {
			return rest.Fail(c, http.StatusBadRequest, "Invalid data", "id must be an integer")
		}
		removed, err = ct.users.DeleteByID(c.UserContext(), id)
	} else {
		removed, err = ct.users.DeleteByEmail(c.UserContext(), email)
	}

	if err != nil {
		ct.logger.Error("User deletion failed", "error", err)
		return rest.FailFromError(c, err)
	}

	if !removed {
		return rest.Fail(c, http.StatusNotFound, "User not found", nil)
	}

	return rest.OK(c, "User deleted successfully", nil)
}

// Validate handles GET /api/auth/validate/. It reads the cookie only,
// never the Authorization header, and does not resolve the user row.
func (ct *Controller) Validate(c *fiber.Ctx) error {
	raw := TokenFromCookie(c)
	if raw == "" {
		return rest.FailFromError(c, ErrNoToken)
	}

	claims, err := ct.tokens.Validate(raw)
	if err != nil {
		return rest.FailFromError(c, err)
	}

	return rest.OK(c, "Token is valid", fiber.Map{
		"user_id": claims.UserID,
		"email":   claims.Email,
	})
}

func (ct *Controller) setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(ct.cookieTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (ct *Controller) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
