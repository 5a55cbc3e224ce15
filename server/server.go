package server

import (
	"context"
	"github.com/egaotan/solana-http-server/config"
	"github.com/egaotan/solana-http-server/encoder"
	"github.com/egaotan/solana-http-server/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log"
	"net/http"
	"time"
)

type Server struct {
	cfg        *config.Config
	ctx        context.Context
	logger     *log.Logger
	encoder    *encoder.Encoder
	store      *store.Store
	limiter    *rateLimiter
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer wires the http routes. st may be nil when no audit database is
// configured.
func NewServer(ctx context.Context, cfg *config.Config, logger *log.Logger, enc *encoder.Encoder, st *store.Store) *Server {
	s := &Server{
		cfg:     cfg,
		ctx:     ctx,
		logger:  logger,
		encoder: enc,
		store:   st,
	}
	if cfg.RateLimit.Enabled {
		s.limiter = newRateLimiter(cfg.RateLimit.Rps, cfg.RateLimit.Burst)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestId(), s.accessLog(), cors.New(corsConfig(s.cfg.CorsOrigins)))
	router.NoRoute(s.notFound)

	router.GET("/health", s.health)
	if s.cfg.Metrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	g := router.Group("/", s.rateLimit())
	g.POST("/keypair", s.generateKeypair)
	g.POST("/keypair/mnemonic", s.mnemonicKeypair)
	g.POST("/token/create", s.createToken)
	g.POST("/token/mint", s.mintToken)
	g.POST("/token/ata", s.associatedAccount)
	g.POST("/message/sign", s.signMessage)
	g.POST("/message/verify", s.verifyMessage)
	g.POST("/send/sol", s.sendSol)
	g.POST("/send/token", s.sendToken)
	return router
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Service() {
	s.Start()
	s.StartRPC()
	<-s.ctx.Done()
	s.StopRPC()
	s.Stop()
}

func (s *Server) Start() {
	if s.store != nil {
		s.store.Start()
	}
}

func (s *Server) Stop() {
	if s.store != nil {
		s.store.Stop()
	}
}

func (s *Server) StartRPC() {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Printf("start rpc server on %s......", s.cfg.Address())
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("ListenAndServe: %s", err.Error())
		}
	}()
}

func (s *Server) StopRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Printf("rpc server shutdown err: %s", err.Error())
	}
	s.logger.Printf("rpc server has stopped......")
}
