// Package web wires the gin engine of the bookshelf server: middleware,
// session store, controllers and the HTTP listener.
package web

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/raimis707/bookshelf/config"
	"github.com/raimis707/bookshelf/logger"
	"github.com/raimis707/bookshelf/util/common"
	"github.com/raimis707/bookshelf/web/cache"
	"github.com/raimis707/bookshelf/web/controller"
	"github.com/raimis707/bookshelf/web/locale"
	"github.com/raimis707/bookshelf/web/middleware"
	"github.com/raimis707/bookshelf/web/network"
	"github.com/raimis707/bookshelf/web/service"
	"github.com/raimis707/bookshelf/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Server is the bookshelf web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index   *controller.IndexController
	books   *controller.BookController
	review  *controller.ReviewController
	account *controller.AccountController
	admin   *controller.AdminController
	setting *controller.SettingController

	settingService service.SettingService

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// NewEngine builds the router without binding a listener. The database and
// redis must already be initialized.
func (s *Server) NewEngine() (*gin.Engine, error) {
	return s.initRouter()
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	webDomain, err := s.settingService.GetWebDomain()
	if err != nil {
		return nil, err
	}
	if webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}

	sessionMaxAge, err := s.settingService.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}

	if err := locale.InitLocalizer(); err != nil {
		return nil, err
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})

	cookieOptions := sessions.Options{
		Path:     basePath,
		MaxAge:   sessionMaxAge * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store := cache.NewRedisStore(cache.GetClient(), secret)
	store.Options(cookieOptions)
	session.SetCookieOptions(cookieOptions)
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.ResolvePrincipal())

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g)
	s.account = controller.NewAccountController(g)
	s.review = controller.NewReviewController(g)
	s.books = controller.NewBookController(g)

	admin := g.Group("/admin", middleware.AdminRequired())
	s.admin = controller.NewAdminController(admin)
	s.setting = controller.NewSettingController(admin)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	certFile, err := s.settingService.GetCertFile()
	if err != nil {
		return err
	}
	keyFile, err := s.settingService.GetKeyFile()
	if err != nil {
		return err
	}
	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewHTTPSRedirectListener(listener)
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("Web server stopped:", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop() error {
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	s.cancel()
	if s.listener != nil {
		err2 = s.listener.Close()
		if errors.Is(err2, net.ErrClosed) {
			err2 = nil
		}
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
