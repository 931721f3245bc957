package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/presupuesto/internal/articlerequest"
	"github.com/SergeyParamoshkin/presupuesto/internal/articleresponse"
	"github.com/SergeyParamoshkin/presupuesto/internal/errresponse"
)

// API exposes a Service over HTTP.
type API struct {
	svc *Service
	log *zap.SugaredLogger
}

func NewAPI(svc *Service, log *zap.SugaredLogger) *API {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &API{svc: svc, log: log}
}

// Routes mounts the RESTy routes for the "articles" resource.
func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", a.ListArticles)
	r.Post("/", a.CreateArticle)

	r.Route("/{articleID}", func(r chi.Router) {
		r.Use(a.ArticleCtx)            // Load the *Article on the request context
		r.Get("/", a.GetArticle)       // GET /articles/123
		r.Put("/", a.UpdateArticle)    // PUT /articles/123
		r.Delete("/", a.DeleteArticle) // DELETE /articles/123
	})

	return r
}

func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.svc.List(r.Context())
	if err != nil {
		a.render(w, r, a.errRenderer(err))

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		a.render(w, r, errresponse.ErrRender(err))
	}
}

// CreateArticle persists the posted Article and returns it
// back to the client as an acknowledgement.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		a.render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article, err := a.svc.Create(r.Context(), data.Description, data.Quantity, data.Category)
	if err != nil {
		a.render(w, r, a.errRenderer(err))

		return
	}

	render.Status(r, http.StatusCreated)
	a.render(w, r, articleresponse.NewArticleResponse(article))
}

// GetArticle returns the Article loaded by ArticleCtx.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, articleresponse.NewArticleResponse(articleFrom(r.Context())))
}

// UpdateArticle applies the non-blank fields of the payload.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFrom(r.Context())

	data := &articlerequest.PatchRequest{}
	if err := render.Bind(r, data); err != nil {
		a.render(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article, err := a.svc.Update(r.Context(), article.ID, *data.Patch)
	if err != nil {
		a.render(w, r, a.errRenderer(err))

		return
	}

	a.render(w, r, articleresponse.NewArticleResponse(article))
}

// DeleteArticle removes an existing Article and returns it.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article := articleFrom(r.Context())

	if err := a.svc.Delete(r.Context(), article.ID); err != nil {
		a.render(w, r, a.errRenderer(err))

		return
	}

	a.render(w, r, articleresponse.NewArticleResponse(article))
}

func (a *API) errRenderer(err error) render.Renderer {
	switch OutcomeOf(err) {
	case OutcomeInvalid:
		return errresponse.ErrInvalidRequest(err)
	case OutcomeNotFound:
		return errresponse.ErrNotFound
	default:
		a.log.Errorw("store fault", "error", err)

		return errresponse.ErrStore(err)
	}
}
