package demosite

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"login_automation/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	pathRoot      = "/"
	pathInventory = "/" + entities.PathInventory
	pathLogout    = "/logout"

	// errorParam selects a login banner after a redirect
	errorParam         = "error"
	errorCodeNoSession = "inventory"
)

// Server is the replica site.
type Server struct {
	router chi.Router
	logger *logrus.Logger
}

type loginView struct {
	Action    string
	Username  string
	Error     string
	Usernames []string
	Password  string
}

type inventoryView struct {
	Username      string
	Products      []Product
	InventoryPath string
	LogoutPath    string
}

// NewServer - builds the replica site router
func NewServer(logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	router := chi.NewRouter()
	router.Use(s.loggingMiddleware)

	router.Get(pathRoot, s.handleLoginPage)
	router.Post(pathRoot, s.handleLogin)
	router.Get(pathInventory, s.handleInventory)
	router.Get(pathLogout, s.handleLogout)

	s.router = router
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	view := s.newLoginView()
	if r.URL.Query().Get(errorParam) == errorCodeNoSession {
		view.Error = entities.MsgInventoryNoSession
	}
	s.render(w, http.StatusOK, "login.html", view)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	creds := entities.Credentials{
		Username: r.PostForm.Get("user-name"),
		Password: r.PostForm.Get("password"),
	}

	if msg, ok := authenticate(creds); !ok {
		s.logger.WithFields(logrus.Fields{
			"username": creds.Username,
			"reason":   msg,
		}).Debug("login rejected")

		view := s.newLoginView()
		view.Username = creds.Username
		view.Error = msg
		s.render(w, http.StatusOK, "login.html", view)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    creds.Username,
		Path:     pathRoot,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.WithField("username", creds.Username).Debug("login accepted")
	http.Redirect(w, r, pathInventory, http.StatusSeeOther)
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	username, ok := sessionUser(r)
	if !ok {
		http.Redirect(w, r, pathRoot+"?"+errorParam+"="+errorCodeNoSession, http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "inventory.html", inventoryView{
		Username:      username,
		Products:      Products,
		InventoryPath: pathInventory,
		LogoutPath:    pathLogout,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    SessionCookie,
		Value:   "",
		Path:    pathRoot,
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	http.Redirect(w, r, pathRoot, http.StatusSeeOther)
}

func (s *Server) newLoginView() loginView {
	return loginView{
		Action:    pathRoot,
		Usernames: usernames,
		Password:  entities.SharedPassword,
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.WithError(err).WithField("template", name).Error("failed to render page")
	}
}

func sessionUser(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	if !activeUser(c.Value) {
		return "", false
	}
	return c.Value, true
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request")
	})
}
