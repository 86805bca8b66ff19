package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
	"github.com/julienschmidt/httprouter"
)

func (a *API) listPosts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var (
		list []*models.Post
		err  error
	)

	q := r.URL.Query()
	if q.Has("title") {
		list, err = a.posts.SearchByTitle(r.Context(), q.Get("title"))
	} else {
		list, err = a.posts.List(r.Context())
	}
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPostListResponse(list))
}

func (a *API) getPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := idParam(ps)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	p, err := a.posts.Get(r.Context(), id)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPostResponse(p))
}

func (a *API) createPost(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req postRequest
	if err := decodeBody(r, &req); err != nil {
		a.encodeError(w, r, err)
		return
	}

	username, ok := UsernameFromContext(r.Context())
	if !ok {
		a.encodeError(w, r, common.ErrorUnauthorized)
		return
	}

	p, err := a.posts.Create(r.Context(), username, &models.Post{Title: req.Title, Text: req.Text})
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/posts/%d", p.ID))
	writeJSON(w, http.StatusCreated, newPostResponse(p))
}

func (a *API) updatePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := idParam(ps)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	var req postRequest
	if err := decodeBody(r, &req); err != nil {
		a.encodeError(w, r, err)
		return
	}

	p, err := a.posts.Update(r.Context(), &models.Post{ID: id, Title: req.Title, Text: req.Text})
	if err != nil {
		a.encodeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPostResponse(p))
}

func (a *API) deletePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := idParam(ps)
	if err != nil {
		a.encodeError(w, r, err)
		return
	}

	if err := a.posts.Delete(r.Context(), id); err != nil {
		a.encodeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
