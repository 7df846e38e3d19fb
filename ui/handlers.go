package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"maldash/domain/core"
	"maldash/domain/render"
	"maldash/domain/viewstate"
	"maldash/internal/analysis"
	"maldash/internal/dataset"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDatasetsList(c *gin.Context) {
	manifests, err := s.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": manifests})
}

// loadDataset resolves the :id path param, writing the error response
// itself when the dataset cannot be served.
func (s *Server) loadDataset(c *gin.Context) (*dataset.Dataset, bool) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	ds, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsNotFoundError(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return ds, true
}

func (s *Server) handleDatasetManifest(c *gin.Context) {
	ds, ok := s.loadDataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ds.Manifest())
}

func (s *Server) handleMetricSummary(c *gin.Context) {
	ds, ok := s.loadDataset(c)
	if !ok {
		return
	}

	metric := core.MetricKey(c.Param("metric"))
	values, err := ds.Column(metric)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	summary, err := analysis.ComputeSummary(metric, values)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleCorrelation(c *gin.Context) {
	ds, ok := s.loadDataset(c)
	if !ok {
		return
	}

	x := core.MetricKey(c.Query("x"))
	y := core.MetricKey(c.Query("y"))
	if x.String() == "" || y.String() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query params x and y are required"})
		return
	}

	samples, err := ds.Pairs(x, y)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	result := analysis.WithSignificance(s.cache.Compute(samples))
	c.JSON(http.StatusOK, gin.H{
		"x":          x,
		"y":          y,
		"result":     result,
		"strength":   result.Strength(),
		"direction":  result.Direction(),
		"annotation": render.FormatAnnotation(result),
	})
}

func (s *Server) handleMatrix(c *gin.Context) {
	ds, ok := s.loadDataset(c)
	if !ok {
		return
	}

	matrix, err := analysis.ComputeMatrix(c.Request.Context(), ds, s.matrixWorkers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{"matrix": matrix}
	if x, y, r, found := matrix.Strongest(); found {
		response["strongest"] = gin.H{"x": x, "y": y, "r": r}
	}
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleRender(c *gin.Context) {
	ds, ok := s.loadDataset(c)
	if !ok {
		return
	}

	session := core.SessionID(c.Query("session"))
	view := s.viewStateFor(session, ds.ID)

	tree, err := s.buildTree(view, ds)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tree)
}

// buildTree applies the view's filters to the dataset, extracts the scatter
// selection, and hands everything to the pure tree builder.
func (s *Server) buildTree(view viewstate.ViewState, ds *dataset.Dataset) (render.RenderTree, error) {
	filtered := ds
	if enabled := view.EnabledFilters(); len(enabled) > 0 {
		ranges := make([]dataset.Range, len(enabled))
		for i, f := range enabled {
			ranges[i] = dataset.Range{Metric: f.Metric, Min: f.Min, Max: f.Max}
		}
		var err error
		if filtered, err = ds.Filtered(ranges); err != nil {
			return render.RenderTree{}, err
		}
	}

	data := render.Data{DatasetID: ds.ID}
	for _, metric := range filtered.Metrics() {
		values, err := filtered.Column(metric)
		if err != nil {
			return render.RenderTree{}, err
		}
		data.Series = append(data.Series, render.MetricSeries{Key: metric, Values: values})
	}

	axes := view.Scatter
	if axes.X.String() != "" && axes.Y.String() != "" {
		samples, sizes, err := filtered.PairsWithSize(axes.X, axes.Y, axes.Size)
		if err != nil {
			return render.RenderTree{}, err
		}
		data.ScatterSamples = samples
		data.BubbleSizes = sizes
	}

	return render.BuildRenderTree(view, data), nil
}

func (s *Server) handleNotes(c *gin.Context) {
	ds, ok := s.loadDataset(c)
	if !ok {
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	html := markdown.ToHTML([]byte(ds.Description), p, renderer)

	c.JSON(http.StatusOK, gin.H{
		"dataset_id": ds.ID,
		"markdown":   ds.Description,
		"html":       string(html),
	})
}

func (s *Server) handleViewStateGet(c *gin.Context) {
	session, err := core.ParseSessionID(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.sessionMutex.RLock()
	state, ok := s.sessions[session]
	s.sessionMutex.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": core.ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) handleViewStateEvent(c *gin.Context) {
	session, err := core.ParseSessionID(c.Param("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event viewstate.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload: " + err.Error()})
		return
	}

	datasetID := core.DatasetID(c.Query("dataset_id"))
	state := s.viewStateFor(session, datasetID)
	if state.DatasetID.String() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset_id query param is required for a new session"})
		return
	}

	next, err := viewstate.Apply(state, event)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.storeViewState(next)
	c.JSON(http.StatusOK, next)
}
