package handler

import (
	"net/http"

	"github.com/recipebox-dev/recipebox/internal/api"
	"github.com/recipebox-dev/recipebox/internal/domain"
	mw "github.com/recipebox-dev/recipebox/internal/middleware"
	"github.com/recipebox-dev/recipebox/internal/service"
	"github.com/recipebox-dev/recipebox/internal/utils"
)

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	h.listAttributes(w, r, h.tags)
}

func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	h.createAttribute(w, r, h.tags)
}

func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	h.listAttributes(w, r, h.ingredients)
}

func (h *Handler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	h.createAttribute(w, r, h.ingredients)
}

func (h *Handler) listAttributes(w http.ResponseWriter, r *http.Request, svc service.AttributeService) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	attrs, err := svc.List(*user)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	items := make([]api.AttributeResponse, len(attrs))
	for i, a := range attrs {
		items[i] = attributeResponse(a)
	}
	writeJSON(w, http.StatusOK, api.AttributeListResponse{Items: items})
}

func (h *Handler) createAttribute(w http.ResponseWriter, r *http.Request, svc service.AttributeService) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateAttributeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	attr, err := svc.Create(*user, body.Name)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, attributeResponse(attr))
}

func attributeResponse(a domain.Attribute) api.AttributeResponse {
	return api.AttributeResponse{Id: a.Id, Name: a.Name}
}
