package middleware

import (
	"readquest/backend/config"
	"readquest/backend/services"
	"readquest/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	identityKey = "identity"
	adminKey    = "admin"

	sessionAdminID       = "admin_id"
	sessionAdminUsername = "admin_username"
)

// AdminSession is what a logged-in admin carries through a request.
type AdminSession struct {
	ID       uint
	Username string
}

// AuthMiddleware verifies the reader's bearer token and makes sure a reader
// row exists for its subject.
func AuthMiddleware(cfg *config.Config, users *services.UserService, log *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.ExtractIdentityFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		if err := users.EnsureUser(c.UserContext(), *id); err != nil {
			log.Error("ensure user failed", "path", c.Path(), "error", err)
			return utils.InternalServerError(c, "Internal server error")
		}
		c.Locals(identityKey, id)
		return c.Next()
	}
}

// CurrentIdentity returns the reader resolved by AuthMiddleware.
func CurrentIdentity(c *fiber.Ctx) *utils.Identity {
	id, _ := c.Locals(identityKey).(*utils.Identity)
	return id
}

// CurrentUserID is a shortcut for CurrentIdentity(c).UserID.
func CurrentUserID(c *fiber.Ctx) string {
	if id := CurrentIdentity(c); id != nil {
		return id.UserID
	}
	return ""
}

// AdminMiddleware admits requests carrying an admin session. A valid reader
// token without an admin session gets 403; anything else gets 401.
func AdminMiddleware(cfg *config.Config, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, err := LoadAdminSession(c, store)
		if err != nil {
			return utils.InternalServerError(c, "Internal server error")
		}
		if admin != nil {
			c.Locals(adminKey, admin)
			return c.Next()
		}
		if _, err := utils.ExtractIdentityFromToken(c, cfg); err == nil {
			return utils.Forbidden(c, "Forbidden - Admin access required")
		}
		return utils.Unauthorized(c, "Admin authentication required")
	}
}

// CurrentAdmin returns the admin admitted by AdminMiddleware.
func CurrentAdmin(c *fiber.Ctx) *AdminSession {
	admin, _ := c.Locals(adminKey).(*AdminSession)
	return admin
}

// LoadAdminSession reads the admin from the session cookie, or nil if none.
func LoadAdminSession(c *fiber.Ctx, store *session.Store) (*AdminSession, error) {
	sess, err := store.Get(c)
	if err != nil {
		return nil, err
	}
	id, ok := sess.Get(sessionAdminID).(uint)
	if !ok || id == 0 {
		return nil, nil
	}
	username, _ := sess.Get(sessionAdminUsername).(string)
	return &AdminSession{ID: id, Username: username}, nil
}

// StartAdminSession rotates the session id and stores the admin in it.
func StartAdminSession(c *fiber.Ctx, store *session.Store, admin AdminSession) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionAdminID, admin.ID)
	sess.Set(sessionAdminUsername, admin.Username)
	return sess.Save()
}

// EndAdminSession destroys the session, if any.
func EndAdminSession(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
