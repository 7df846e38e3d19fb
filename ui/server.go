package ui

import (
	"fmt"
	"log"
	"sync"

	"github.com/gin-gonic/gin"

	"maldash/domain/core"
	"maldash/domain/viewstate"
	"maldash/internal/analysis"
	"maldash/ports"
)

// Server is the dashboard JSON API. It serves chart-ready data only: render
// trees, summaries and correlation statistics. Pixels, layout and theming
// belong to the rendering client.
type Server struct {
	router *gin.Engine
	store  ports.DatasetStorePort
	cache  *analysis.ResultCache

	matrixWorkers int

	// Per-session view state, transitioned by discrete events.
	sessionMutex sync.RWMutex
	sessions     map[core.SessionID]viewstate.ViewState
}

// Config holds server dependencies and tuning.
type Config struct {
	GinMode       string
	Store         ports.DatasetStorePort
	CacheSize     int
	MatrixWorkers int
}

// NewServer creates a wired dashboard server.
func NewServer(config Config) (*Server, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("dataset store is required")
	}
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	cacheSize := config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}
	cache, err := analysis.NewResultCache(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	workers := config.MatrixWorkers
	if workers < 1 {
		workers = 4
	}

	s := &Server{
		router:        gin.Default(),
		store:         config.Store,
		cache:         cache,
		matrixWorkers: workers,
		sessions:      make(map[core.SessionID]viewstate.ViewState),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/health", s.handleHealth)

	api.GET("/datasets", s.handleDatasetsList)
	api.GET("/datasets/:id", s.handleDatasetManifest)
	api.GET("/datasets/:id/summary/:metric", s.handleMetricSummary)
	api.GET("/datasets/:id/correlation", s.handleCorrelation)
	api.GET("/datasets/:id/matrix", s.handleMatrix)
	api.GET("/datasets/:id/render", s.handleRender)
	api.GET("/datasets/:id/notes", s.handleNotes)

	api.GET("/viewstate/:session", s.handleViewStateGet)
	api.POST("/viewstate/:session/events", s.handleViewStateEvent)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Start runs the server on the given port, blocking until it exits.
func (s *Server) Start(port string) error {
	log.Printf("[Server] Dashboard API listening on :%s", port)
	return s.router.Run(":" + port)
}

// viewStateFor returns the session's state, or a fresh default bound to the
// given dataset when the session is unknown.
func (s *Server) viewStateFor(session core.SessionID, datasetID core.DatasetID) viewstate.ViewState {
	s.sessionMutex.RLock()
	state, ok := s.sessions[session]
	s.sessionMutex.RUnlock()
	if ok {
		return state
	}
	return viewstate.NewViewState(session, datasetID)
}

func (s *Server) storeViewState(state viewstate.ViewState) {
	s.sessionMutex.Lock()
	s.sessions[state.Session] = state
	s.sessionMutex.Unlock()
}
