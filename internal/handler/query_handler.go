package handler

import (
	"net/http"

	"booksim/internal/service"
	"booksim/internal/similarity"

	"github.com/go-chi/chi/v5"
)

type QueryHandler struct {
	svc *service.QueryService
}

func NewQueryHandler(s *service.QueryService) *QueryHandler {
	return &QueryHandler{svc: s}
}

type compareResponse struct {
	A string `json:"a"`
	B string `json:"b"`
	similarity.Result
}

// MountQueryRoutes registers the book, user and dataset endpoints.
func MountQueryRoutes(r chi.Router, h *QueryHandler) {
	r.Route("/books", func(r chi.Router) {
		r.Get("/top", h.TopBooks)
		r.Get("/compare", h.CompareBooks)
		r.Get("/{isbn}", h.GetBook)
		r.Get("/{isbn}/similar", h.SimilarBooks)
		r.Get("/{isbn}/ws/similar", h.SimilarBooksWS)
	})
	r.Route("/users", func(r chi.Router) {
		r.Get("/top", h.TopUsers)
		r.Get("/compare", h.CompareUsers)
		r.Get("/{id}", h.GetUser)
		r.Get("/{id}/similar", h.SimilarUsers)
	})
	r.Get("/dataset/summary", h.Summary)
}

func compareRequest(r *http.Request) (service.CompareRequest, error) {
	p, err := queryFloat(r, "p")
	if err != nil {
		return service.CompareRequest{}, err
	}
	q := r.URL.Query()
	return service.CompareRequest{A: q.Get("a"), B: q.Get("b"), Metric: q.Get("metric"), P: p}, nil
}

func similarRequest(r *http.Request, id string) (service.SimilarRequest, error) {
	n, err := queryInt(r, "n", service.DefaultN)
	if err != nil {
		return service.SimilarRequest{}, err
	}
	p, err := queryFloat(r, "p")
	if err != nil {
		return service.SimilarRequest{}, err
	}
	overlap, err := queryBool(r, "overlap_only")
	if err != nil {
		return service.SimilarRequest{}, err
	}
	refresh, err := queryBool(r, "refresh")
	if err != nil {
		return service.SimilarRequest{}, err
	}
	return service.SimilarRequest{
		ID:          id,
		N:           n,
		Metric:      r.URL.Query().Get("metric"),
		P:           p,
		OverlapOnly: overlap,
		Refresh:     refresh,
	}, nil
}

// @Summary Top books by title
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param n query int false "number of books (default 10)"
// @Success 200 {array} models.BookSummary
// @Router /books/top [get]
func (h *QueryHandler) TopBooks(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", service.DefaultN)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.TopBooks(r.Context(), n))
}

// @Summary Book details with its ratings
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param isbn path string true "ISBN"
// @Success 200 {object} models.Book
// @Failure 404 {string} string
// @Router /books/{isbn} [get]
func (h *QueryHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	b := h.svc.Book(r.Context(), chi.URLParam(r, "isbn"))
	if b == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// @Summary Compare two books
// @Description Unknown books or books without common raters are reported in the reason field
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param a query string true "first ISBN"
// @Param b query string true "second ISBN"
// @Param metric query string false "euclidean|manhattan|minkowski|cosine|pearson (default euclidean)"
// @Param p query number false "minkowski order (default 1)"
// @Success 200 {object} compareResponse
// @Failure 400 {string} string
// @Router /books/compare [get]
func (h *QueryHandler) CompareBooks(w http.ResponseWriter, r *http.Request) {
	req, err := compareRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.svc.CompareBooks(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{A: req.A, B: req.B, Result: res})
}

// @Summary Nearest books
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param isbn path string true "ISBN"
// @Param n query int false "number of neighbors (default 10, max 1000)"
// @Param metric query string false "ranking metric (default euclidean)"
// @Param p query number false "minkowski order"
// @Param overlap_only query bool false "drop books without common raters"
// @Param refresh query bool false "skip the Redis cache"
// @Success 200 {object} models.SimilarityDoc
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /books/{isbn}/similar [get]
func (h *QueryHandler) SimilarBooks(w http.ResponseWriter, r *http.Request) {
	req, err := similarRequest(r, chi.URLParam(r, "isbn"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := h.svc.SimilarBooks(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// @Summary Top users by rating count
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param n query int false "number of users (default 10)"
// @Success 200 {array} models.UserSummary
// @Router /users/top [get]
func (h *QueryHandler) TopUsers(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", service.DefaultN)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.TopUsers(r.Context(), n))
}

// @Summary User with its ratings
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} models.User
// @Failure 404 {string} string
// @Router /users/{id} [get]
func (h *QueryHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u := h.svc.User(r.Context(), chi.URLParam(r, "id"))
	if u == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// @Summary Compare two users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param a query string true "first user id"
// @Param b query string true "second user id"
// @Param metric query string false "pearson|manhattan|euclidean|minkowski|cosine (default euclidean)"
// @Param p query number false "minkowski order (default 1)"
// @Success 200 {object} compareResponse
// @Failure 400 {string} string
// @Router /users/compare [get]
func (h *QueryHandler) CompareUsers(w http.ResponseWriter, r *http.Request) {
	req, err := compareRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.svc.CompareUsers(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compareResponse{A: req.A, B: req.B, Result: res})
}

// @Summary Nearest users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "user id"
// @Param n query int false "number of neighbors (default 10, max 1000)"
// @Param metric query string false "ranking metric (default euclidean)"
// @Param p query number false "minkowski order"
// @Param overlap_only query bool false "drop users without common books"
// @Param refresh query bool false "skip the Redis cache"
// @Success 200 {object} models.SimilarityDoc
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /users/{id}/similar [get]
func (h *QueryHandler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	req, err := similarRequest(r, chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := h.svc.SimilarUsers(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// @Summary Loaded dataset summary
// @Tags dataset
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.DatasetSummary
// @Router /dataset/summary [get]
func (h *QueryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Summary())
}
