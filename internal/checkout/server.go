package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Outcome string

const (
	Paid      Outcome = "paid"
	Dismissed Outcome = "dismissed"
	Failed    Outcome = "failed"
)

// Callback is what the checkout page reports back.
type Callback struct {
	Outcome   Outcome
	PaymentID string
	OrderID   string
	Signature string
	Reason    string
}

type Prefill struct {
	Name  string
	Email string
	Phone string
}

type session struct {
	order   Order
	prefill Prefill
	done    chan Callback
}

// Server hosts the local checkout page and receives its callbacks.
type Server struct {
	addr   string
	brand  string
	loader *Loader
	log    *slog.Logger
	engine *gin.Engine
	srv    *http.Server
	ln     net.Listener

	mu       sync.Mutex
	sessions map[string]*session
}

func NewServer(addr, brand string, loader *Loader, log *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		addr:     addr,
		brand:    brand,
		loader:   loader,
		log:      log,
		sessions: map[string]*session{},
	}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	co := r.Group("/checkout/:order")
	{
		co.GET("", s.page)
		co.GET("/script.js", s.script)
		co.POST("/success", s.success)
		co.POST("/dismiss", s.dismiss)
		co.POST("/failure", s.failure)
	}
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("checkout request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("checkout server error", "err", err)
		}
	}()
	return nil
}

// BaseURL is the address the server listens on, valid after Start.
func (s *Server) BaseURL() string {
	if s.ln == nil {
		return "http://" + s.addr
	}
	return "http://" + s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// Open registers an order and returns the page path, the channel that
// receives its single callback, and a func that forgets the order.
func (s *Server) Open(o Order, p Prefill) (string, <-chan Callback, func()) {
	sess := &session{order: o, prefill: p, done: make(chan Callback, 1)}
	s.mu.Lock()
	s.sessions[o.OrderID] = sess
	s.mu.Unlock()
	return "/checkout/" + o.OrderID, sess.done, func() { s.take(o.OrderID) }
}

func (s *Server) lookup(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Server) take(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[id]
	delete(s.sessions, id)
	return sess
}

func (s *Server) page(c *gin.Context) {
	sess := s.lookup(c.Param("order"))
	if sess == nil {
		c.String(http.StatusNotFound, "unknown order")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := page.Execute(c.Writer, pageData{
		Base:     "/checkout/" + sess.order.OrderID,
		Key:      sess.order.KeyID,
		Amount:   sess.order.Amount,
		Currency: sess.order.Currency,
		OrderID:  sess.order.OrderID,
		Brand:    s.brand,
		Name:     sess.prefill.Name,
		Email:    sess.prefill.Email,
		Phone:    sess.prefill.Phone,
	})
	if err != nil {
		s.log.Error("render checkout page", "err", err)
	}
}

func (s *Server) script(c *gin.Context) {
	body := s.loader.Script()
	if body == nil {
		c.String(http.StatusServiceUnavailable, "checkout script not loaded")
		return
	}
	c.Data(http.StatusOK, "application/javascript", body)
}

func (s *Server) deliver(c *gin.Context, cb Callback) {
	sess := s.take(c.Param("order"))
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown order"})
		return
	}
	sess.done <- cb
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

type successBody struct {
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

func (s *Server) success(c *gin.Context) {
	var b successBody
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.deliver(c, Callback{Outcome: Paid, PaymentID: b.PaymentID, OrderID: b.OrderID, Signature: b.Signature})
}

func (s *Server) dismiss(c *gin.Context) {
	s.deliver(c, Callback{Outcome: Dismissed})
}

func (s *Server) failure(c *gin.Context) {
	var b struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&b)
	s.deliver(c, Callback{Outcome: Failed, Reason: b.Reason})
}
