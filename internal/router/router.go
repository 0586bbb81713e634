package router

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"appointment-booking-api/internal/config"
	"appointment-booking-api/internal/handler"
	appmw "appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/rpc"
)

// New builds the echo instance with middleware and routes wired. grpcWeb, when
// non-nil, serves gRPC-Web calls under /booking.v1.BookingService/.
func New(cfg *config.Config, h *handler.Handler, rl *appmw.RateLimiter, grpcWeb http.Handler, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = handler.ErrorHandler(log)
	e.IPExtractor = ipExtractor(cfg.TrustedProxies)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, "X-Grpc-Web", "X-User-Agent"},
		ExposeHeaders: []string{"Grpc-Status", "Grpc-Message", "Grpc-Status-Details-Bin"},
		MaxAge:        86400,
	}))
	e.Use(requestLogger(log))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/health", h.Health)

	// Public routes, throttled per client IP
	api.POST("/register", h.Register, rl.Echo())
	api.POST("/login", h.Login, rl.Echo())
	api.GET("/slots", h.ListSlots)

	// Protected routes. Each handler authorizes the caller itself.
	api.POST("/logout", h.Logout)
	api.POST("/book", h.Book)
	api.GET("/my-bookings", h.MyBookings)
	api.GET("/all-bookings", h.AllBookings)
	api.DELETE("/cancel/:id", h.Cancel)

	if grpcWeb != nil {
		e.POST("/"+rpc.ServiceName+"/*", echo.WrapHandler(grpcWeb))
	}

	if cfg.StaticDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.StaticDir,
			Index: "index.html",
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger/") ||
					strings.HasPrefix(p, "/"+rpc.ServiceName+"/")
			},
		}))
	}
	return e
}

// ipExtractor takes the client IP from the socket unless proxies are
// configured, in which case X-Forwarded-For is honoured only through them.
func ipExtractor(proxies []*net.IPNet) echo.IPExtractor {
	if len(proxies) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range proxies {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				attrs = append(attrs, "err", v.Error)
			}
			log.LogAttrs(c.Request().Context(), levelFor(v.Status), "request", slog.Group("http", attrs...))
			return nil
		},
	})
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
