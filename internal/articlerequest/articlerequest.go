package articlerequest

import (
	"errors"
	"net/http"

	"github.com/SergeyParamoshkin/presupuesto/internal/model"
)

// ArticleRequest is the request payload for creating an Article.
type ArticleRequest struct {
	*model.Article

	ProtectedID string `json:"id"` // override 'id' json to have more control
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// a.Article is nil if no Article fields are sent in the request. Return an
	// error to avoid a nil pointer dereference.
	if a.Article == nil {
		return errors.New("missing required Article fields")
	}

	// ids are always generated server side
	a.ProtectedID = ""
	a.Article.ID = ""

	return nil
}

// PatchRequest is the request payload for updating an Article. Omitted or
// blank fields are left unchanged.
type PatchRequest struct {
	*model.Patch
}

func (p *PatchRequest) Bind(r *http.Request) error {
	if p.Patch == nil {
		p.Patch = &model.Patch{}
	}

	return nil
}
