package folio

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/theme"
)

const themeKey = "theme"

// sessionPersister keeps a visitor's theme in the signed session cookie.
type sessionPersister struct {
	c        echo.Context
	fallback string
}

// Load implements theme.Persister. Visitors without a cookie get the
// configured default so no cookie is written until they pick a theme.
func (p sessionPersister) Load() (string, error) {
	sess, err := session.Get(sessionName, p.c)
	if err != nil {
		// A cookie signed with an old key decodes with an error but still
		// yields a fresh session; treat it as no preference.
		return p.fallback, nil
	}
	if name, ok := sess.Values[themeKey].(string); ok && name != "" {
		return name, nil
	}
	return p.fallback, nil
}

// Save implements theme.Persister.
func (p sessionPersister) Save(name string) error {
	sess, err := session.Get(sessionName, p.c)
	if err != nil && sess == nil {
		return err
	}
	sess.Values[themeKey] = name
	return sess.Save(p.c.Request(), p.c.Response())
}

func (a *App) themeStore(c echo.Context) (*theme.Store, error) {
	fallback := a.Config.DefaultTheme
	if fallback == "" {
		fallback = theme.DefaultName
	}
	return theme.NewStore(sessionPersister{c: c, fallback: fallback})
}

// currentTheme never fails a page render; a broken cookie just gets the default.
func (a *App) currentTheme(c echo.Context) theme.Theme {
	store, err := a.themeStore(c)
	if err != nil {
		a.Logger.Warn("theme preference unavailable", zap.Error(err))
		return theme.Default()
	}
	return store.Get()
}

func (a *App) handleTheme(c echo.Context) error {
	store, err := a.themeStore(c)
	if err != nil {
		return err
	}
	unsubscribe := store.Subscribe(func(t theme.Theme) {
		h := c.Response().Header()
		h.Set("HX-Trigger", "themeChanged")
		h.Set("HX-Refresh", "true")
		a.Logger.Debug("theme changed", zap.String("theme", t.Name))
	})
	defer unsubscribe()

	if err := store.Set(c.FormValue("theme")); err != nil {
		if errors.Is(err, theme.ErrUnknownTheme) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown theme")
		}
		return err
	}
	if isHTMX(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, backTo(c.Request().Referer()))
}

// backTo keeps only the path and query of ref so the redirect stays on this
// site. Anything unusable becomes "/".
func backTo(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Path == "" || u.Path[0] != '/' || (len(u.Path) > 1 && (u.Path[1] == '/' || u.Path[1] == '\\')) {
		return "/"
	}
	back := url.URL{Path: u.Path, RawQuery: u.RawQuery}
	return back.String()
}
