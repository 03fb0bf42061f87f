package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/gate-pass-service/internal/auth"
	"github.com/iliyamo/gate-pass-service/internal/config"
	"github.com/iliyamo/gate-pass-service/internal/middleware"
	"github.com/iliyamo/gate-pass-service/internal/model"
	"github.com/iliyamo/gate-pass-service/internal/repository"
	"github.com/iliyamo/gate-pass-service/internal/utils"
)

// AccountStore is what the auth endpoints need from the account repository.
type AccountStore interface {
	Create(ctx context.Context, a model.Account) (uint64, error)
	GetByMobile(ctx context.Context, mobile string) (model.Account, error)
	GetByID(ctx context.Context, id uint64) (model.Account, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts AccountStore
}

func NewAuthHandler(cfg config.Config, accounts AccountStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: accounts}
}

// dummyHash is compared against when the mobile is unknown so that a login
// probe costs the same bcrypt work whether or not the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ----- DTOs -----

type loginReq struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Role     string `json:"role"` // claimed role, must match the stored one
}

type registerReq struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Password    string `json:"password"`
	Role        string `json:"role"` // admin | guard (subject to actor rules)
	Designation string `json:"designation"`
	Address     string `json:"address"`
	Email       string `json:"email"`
}

type accountPart struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
}

type loginResp struct {
	Token   string      `json:"token"`
	Expires time.Time   `json:"expires"`
	User    accountPart `json:"user"`
}

// Login verifies mobile + password + claimed role and issues a long-lived
// access token. Every failure (unknown mobile, wrong password, role
// mismatch) answers the identical 401 payload: the caller must not be able
// to tell which part was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "VALIDATION", "message": "invalid body"})
	}
	req.Mobile = strings.TrimSpace(req.Mobile)
	if req.Mobile == "" || req.Password == "" || strings.TrimSpace(req.Role) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "MISSING_FIELD", "message": "mobile, password and role are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accounts.GetByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.VerifyPassword(dummyHash, req.Password) // burn the same time as a real check
			return invalidCredentials(c)
		}
		log.Errorf("login: account lookup failed: %v", err)
		return internalError(c)
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return invalidCredentials(c)
	}
	// The claimed role is a cross-check, not a source of truth: a guard
	// credential must not mint an admin-scoped token just by asserting one.
	claimed, ok := auth.ParseRole(req.Role)
	if !ok || string(claimed) != a.Role {
		log.Debugf("login: role mismatch for account %d", a.ID)
		return invalidCredentials(c)
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, a.ID, a.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		log.Errorf("login: issue token failed: %v", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, loginResp{
		Token:   tok.Token,
		Expires: tok.Exp,
		User:    accountPart{ID: a.ID, Name: a.Name, Mobile: a.Mobile, Role: a.Role, Designation: a.Designation},
	})
}

// Register creates a staff account. The route is gated to admin/superadmin;
// on top of that the actor's own role decides what may be minted: an admin
// always produces a guard no matter what the payload asked for, a
// superadmin may produce admins and guards, and nobody produces a
// superadmin at runtime.
func (h *AuthHandler) Register(c echo.Context) error {
	actorRole, _ := auth.ParseRole(roleFromCtx(c))

	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "VALIDATION", "message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.Designation = strings.TrimSpace(req.Designation)
	req.Address = strings.TrimSpace(req.Address)

	var missing []string
	for field, v := range map[string]string{
		"name": req.Name, "mobile": req.Mobile, "password": req.Password,
		"address": req.Address, "designation": req.Designation,
	} {
		if v == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "MISSING_FIELD", "message": "required fields missing", "fields": missing})
	}

	role := auth.RoleGuard // admins only mint guards; also the default for an empty request
	if actorRole == auth.RoleSuperadmin && strings.TrimSpace(req.Role) != "" {
		requested, ok := auth.ParseRole(req.Role)
		if !ok || !auth.Assignable(actorRole, requested) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "INVALID_ROLE", "message": "role must be admin or guard"})
		}
		role = requested
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		log.Errorf("register: hash password failed: %v", err)
		return internalError(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Accounts.Create(ctx, model.Account{
		Name:         req.Name,
		Mobile:       req.Mobile,
		PasswordHash: hash,
		Role:         string(role),
		Designation:  req.Designation,
		Address:      req.Address,
		Email:        strings.TrimSpace(req.Email),
	})
	if err != nil {
		if errors.Is(err, repository.ErrMobileExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "DUPLICATE_MOBILE", "message": "mobile number already registered"})
		}
		log.Errorf("register: create account failed: %v", err)
		return internalError(c)
	}

	return c.JSON(http.StatusCreated, accountPart{
		ID: id, Name: req.Name, Mobile: req.Mobile, Role: string(role), Designation: req.Designation,
	})
}

// Me returns the identity resolved from the access token.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"account_id": c.Get(middleware.CtxAccountID),
		"role":       c.Get(middleware.CtxRole),
	})
}

// ----- shared helpers -----

func roleFromCtx(c echo.Context) string {
	v, _ := c.Get(middleware.CtxRole).(string)
	return v
}

func accountIDFromCtx(c echo.Context) uint64 {
	v, _ := c.Get(middleware.CtxAccountID).(uint64)
	return v
}

func invalidCredentials(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "INVALID_CREDENTIALS", "message": "invalid credentials"})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "INTERNAL", "message": "internal error"})
}
