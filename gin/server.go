// Package gin serves the dashboard as a JSON API using the gin engine.
package gin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/apptdash"
	"github.com/fwojciec/apptdash/dashboard"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ShutdownTimeout is the time given for in-flight requests to finish.
const ShutdownTimeout = 5 * time.Second

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// Dashboard is the state container the server exposes.
type Dashboard interface {
	State() dashboard.State
	SourceURL() string
	Appointments(search string) []*apptdash.Appointment
	Stats() apptdash.Stats
	Load(ctx context.Context) error
	Refresh(ctx context.Context, sourceURL string) error
	ResetSource(ctx context.Context) error
	Summarize(ctx context.Context) (string, error)
	Ask(ctx context.Context, question string) (string, error)
}

// RefreshRequest is the body of POST /api/refresh.
type RefreshRequest struct {
	SourceURL string `json:"sourceUrl" validate:"omitempty,url"`
}

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// AppointmentsResponse is the body of GET /api/appointments.
type AppointmentsResponse struct {
	Data  []*apptdash.Appointment `json:"data"`
	Total int                     `json:"total"`
	Count int                     `json:"count"`
}

// TextResponse carries assistant output.
type TextResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Server is the HTTP server for the dashboard.
type Server struct {
	ln     net.Listener
	server *http.Server
	engine *gin.Engine
	valid  *validator.Validate
	errc   chan error

	// Addr is the bind address, e.g. ":8080".
	Addr string

	// FormURL is the booking form that GET /form redirects to.
	FormURL string

	// Ping reports whether backing storage is reachable. Optional.
	Ping func(ctx context.Context) error

	Dashboard Dashboard
	Logger    *slog.Logger
}

// NewServer returns a new Server with routes registered.
func NewServer() *Server {
	s := &Server{
		engine: gin.New(),
		valid:  validator.New(),
		errc:   make(chan error, 1),
		Logger: slog.New(slog.DiscardHandler),
	}
	s.server = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.engine.Use(gin.Recovery(), s.requestID, s.accessLog)

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/form", s.handleForm)

	api := s.engine.Group("/api")
	api.GET("/state", s.handleState)
	api.GET("/appointments", s.handleAppointments)
	api.GET("/stats", s.handleStats)
	api.POST("/refresh", s.handleRefresh)
	api.POST("/source/reset", s.handleSourceReset)
	api.POST("/summary", s.handleSummary)
	api.POST("/ask", s.handleAsk)

	return s
}

// ServeHTTP routes a request through the engine.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Open binds the listener and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.Dashboard == nil {
		return errors.New("dashboard required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
			s.errc <- err
		}
	}()
	return nil
}

// Err delivers the error that stopped the server, if it stopped on its own.
// Nothing is sent after a Close.
func (s *Server) Err() <-chan error {
	return s.errc
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(RequestIDHeader, id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func (s *Server) accessLog(c *gin.Context) {
	defer func(begin time.Time) {
		s.Logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
			"request_id", c.GetString(RequestIDHeader),
		)
	}(time.Now())
	c.Next()
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.Ping != nil {
		if err := s.Ping(c.Request.Context()); err != nil {
			s.Logger.Error("health check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: apptdash.EUNAVAILABLE, Message: "storage unavailable"})
			return
		}
	}
	c.String(http.StatusOK, "ok")
}

func (s *Server) handleForm(c *gin.Context) {
	if s.FormURL == "" {
		s.writeError(c, apptdash.Errorf(apptdash.ENOTFOUND, "no booking form configured"))
		return
	}
	c.Redirect(http.StatusFound, s.FormURL)
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.Dashboard.State())
}

func (s *Server) handleAppointments(c *gin.Context) {
	data := s.Dashboard.Appointments(c.Query("q"))
	if data == nil {
		data = []*apptdash.Appointment{}
	}
	c.JSON(http.StatusOK, AppointmentsResponse{
		Data:  data,
		Total: len(data),
		Count: len(s.Dashboard.Appointments("")),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Dashboard.Stats())
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req RefreshRequest
	if err := s.bind(c, &req); err != nil {
		s.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	url := req.SourceURL
	if url == "" {
		url = s.Dashboard.SourceURL()
	}

	var err error
	if url == "" {
		err = s.Dashboard.Load(ctx)
	} else {
		err = s.Dashboard.Refresh(ctx, url)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Dashboard.State())
}

func (s *Server) handleSourceReset(c *gin.Context) {
	if err := s.Dashboard.ResetSource(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Dashboard.State())
}

func (s *Server) handleSummary(c *gin.Context) {
	text, err := s.Dashboard.Summarize(c.Request.Context())
	if err != nil {
		s.writeAssistantError(c, err, text)
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: text})
}

func (s *Server) handleAsk(c *gin.Context) {
	var req AskRequest
	if err := s.bind(c, &req); err != nil {
		s.writeError(c, err)
		return
	}

	text, err := s.Dashboard.Ask(c.Request.Context(), req.Question)
	if err != nil {
		s.writeAssistantError(c, err, text)
		return
	}
	c.JSON(http.StatusOK, TextResponse{Text: text})
}

// bind decodes an optional JSON body into out and validates it.
func (s *Server) bind(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		return apptdash.Errorf(apptdash.EINVALID, "invalid request body: %v", err)
	}
	if err := s.valid.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apptdash.Errorf(apptdash.EINVALID, "invalid %s: failed %q", fe.Field(), fe.Tag())
		}
		return apptdash.Errorf(apptdash.EINVALID, "invalid request: %v", err)
	}
	return nil
}

// writeAssistantError reports an assistant failure. Requests the dashboard
// refused carry their own status; upstream failures answer 502 with the
// fallback text as the message.
func (s *Server) writeAssistantError(c *gin.Context, err error, fallback string) {
	if code := apptdash.ErrorCode(err); code == apptdash.EINVALID || fallback == "" {
		s.writeError(c, err)
		return
	}
	s.Logger.Error("assistant request failed", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: apptdash.EUNAVAILABLE, Message: fallback})
}

func (s *Server) writeError(c *gin.Context, err error) {
	code, message := apptdash.ErrorCode(err), apptdash.ErrorMessage(err)
	if code == apptdash.EINTERNAL {
		s.Logger.Error("internal error", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(statusCode(code), ErrorResponse{Error: code, Message: message})
}

var codes = map[string]int{
	apptdash.ECONFLICT:    http.StatusConflict,
	apptdash.EINVALID:     http.StatusBadRequest,
	apptdash.ENOTFOUND:    http.StatusNotFound,
	apptdash.EUNAVAILABLE: http.StatusBadGateway,
	apptdash.EINTERNAL:    http.StatusInternalServerError,
}

func statusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
