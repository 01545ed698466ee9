package handlers

import (
	"fmt"
	"net/http"

	"reflections/application/commands"
	"reflections/application/commands/bus"
	"reflections/application/queries"
	querybus "reflections/application/queries/bus"
	"reflections/domain/core/valueobjects"
	"reflections/interfaces/http/rest/forms"
	"reflections/interfaces/http/rest/session"
	"reflections/interfaces/http/rest/views"
	"reflections/pkg/auth"
	pkgerrors "reflections/pkg/errors"
	"reflections/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReflectionHandler serves the reflection pages
type ReflectionHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	views        *views.Renderer
	flash        *session.Flash
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewReflectionHandler creates a new reflection handler
func NewReflectionHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	renderer *views.Renderer,
	flash *session.Flash,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *ReflectionHandler {
	return &ReflectionHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		views:        renderer,
		flash:        flash,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// NewForm handles GET /reflection/new
func (h *ReflectionHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, newFormPage(&forms.ReflectionForm{}))
}

// Create handles POST /reflection/new
func (h *ReflectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	form, err := forms.BindReflectionForm(r)
	if err != nil {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "Malformed form submission")
		return
	}
	if !form.Valid() {
		h.renderForm(w, r, http.StatusUnprocessableEntity, newFormPage(form))
		return
	}

	id := valueobjects.NewReflectionID().String()
	err = h.commandBus.Send(r.Context(), commands.CreateReflectionCommand{
		ReflectionID: id,
		UserID:       user.UserID,
		Memory:       form.Memory,
		Happiness:    form.HappinessValue(),
		Symbol:       form.Symbol,
	})
	if err != nil {
		if pkgerrors.IsValidation(err) {
			form.AddError(forms.GeneralError, pkgerrors.GetAppError(err).Message)
			h.renderForm(w, r, http.StatusUnprocessableEntity, newFormPage(form))
			return
		}
		h.errorHandler.Handle(w, r, err)
		return
	}

	http.Redirect(w, r, reflectionURL(id), http.StatusSeeOther)
}

// Show handles GET /reflection/{id}
func (h *ReflectionHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	result, err := h.getReflection(r, user)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageReflection, views.PageData{
		Title: result.Reflection.Symbol,
		User:  user,
		Flash: h.flash.Pop(w, r),
		Data: views.ReflectionPage{
			Reflection: result.Reflection,
			Comments:   result.Comments,
		},
	})
}

// List handles GET /reflections
func (h *ReflectionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	raw, err := h.queryBus.Ask(r.Context(), queries.ListReflectionsQuery{ViewerID: user.UserID})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	result, ok := raw.(*queries.ListReflectionsResult)
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("unexpected list result"))
		return
	}

	h.render(w, r, http.StatusOK, views.PageReflections, views.PageData{
		Title: "Reflections",
		User:  user,
		Flash: h.flash.Pop(w, r),
		Data:  views.ReflectionsPage{Reflections: result.Reflections},
	})
}

// Delete handles GET /reflection/delete/{id}
func (h *ReflectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	result, err := h.getReflection(r, user)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	reflection := result.Reflection

	if !reflection.OwnedByViewer {
		h.denyNonOwner(w, r, reflection.ID, pkgerrors.NewOwnershipError("delete").Message)
		return
	}

	err = h.commandBus.Send(r.Context(), commands.DeleteReflectionCommand{
		ReflectionID: reflection.ID,
		UserID:       user.UserID,
	})
	if err != nil {
		if pkgerrors.IsForbidden(err) {
			h.denyNonOwner(w, r, reflection.ID, pkgerrors.GetAppError(err).Message)
			return
		}
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.flash.Set(w, fmt.Sprintf("Reflection with date %s has been deleted.", utils.FormatDisplay(reflection.ModifyDate)))
	http.Redirect(w, r, "/reflections", http.StatusSeeOther)
}

// Edit handles GET and POST /reflection/edit/{id}.
// Ownership is checked before the form is read.
func (h *ReflectionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	result, err := h.getReflection(r, user)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	reflection := result.Reflection

	if !reflection.OwnedByViewer {
		h.denyNonOwner(w, r, reflection.ID, pkgerrors.NewOwnershipError("edit").Message)
		return
	}

	if r.Method != http.MethodPost {
		h.renderForm(w, r, http.StatusOK, editFormPage(reflection.ID, forms.FromReflection(reflection)))
		return
	}

	form, err := forms.BindReflectionForm(r)
	if err != nil {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "Malformed form submission")
		return
	}
	if !form.Valid() {
		h.renderForm(w, r, http.StatusUnprocessableEntity, editFormPage(reflection.ID, form))
		return
	}

	err = h.commandBus.Send(r.Context(), commands.UpdateReflectionCommand{
		ReflectionID: reflection.ID,
		UserID:       user.UserID,
		Memory:       form.Memory,
		Happiness:    form.HappinessValue(),
		Symbol:       form.Symbol,
	})
	if err != nil {
		switch {
		case pkgerrors.IsForbidden(err):
			h.denyNonOwner(w, r, reflection.ID, pkgerrors.GetAppError(err).Message)
		case pkgerrors.IsValidation(err):
			form.AddError(forms.GeneralError, pkgerrors.GetAppError(err).Message)
			h.renderForm(w, r, http.StatusUnprocessableEntity, editFormPage(reflection.ID, form))
		default:
			h.errorHandler.Handle(w, r, err)
		}
		return
	}

	http.Redirect(w, r, reflectionURL(reflection.ID), http.StatusSeeOther)
}

func (h *ReflectionHandler) getReflection(r *http.Request, user *auth.UserContext) (*queries.GetReflectionResult, error) {
	raw, err := h.queryBus.Ask(r.Context(), queries.GetReflectionQuery{
		ViewerID:     user.UserID,
		ReflectionID: chi.URLParam(r, "id"),
	})
	if err != nil {
		return nil, err
	}
	result, ok := raw.(*queries.GetReflectionResult)
	if !ok {
		return nil, pkgerrors.NewInternalError("unexpected reflection result")
	}
	return result, nil
}

func (h *ReflectionHandler) denyNonOwner(w http.ResponseWriter, r *http.Request, id, message string) {
	h.logger.Info("Non-owner write rejected",
		zap.String("reflectionID", id),
		zap.String("path", r.URL.Path),
	)
	h.flash.Set(w, message)
	http.Redirect(w, r, reflectionURL(id), http.StatusSeeOther)
}

// currentUser returns the request's user or writes a 401 page
func (h *ReflectionHandler) currentUser(w http.ResponseWriter, r *http.Request) *auth.UserContext {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("login required"))
		return nil
	}
	return user
}

func (h *ReflectionHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, page views.FormPage) {
	user, _ := auth.GetUserFromContext(r.Context())
	h.render(w, r, status, views.PageReflectionForm, views.PageData{
		Title: page.Heading,
		User:  user,
		Data:  page,
	})
}

func (h *ReflectionHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data views.PageData) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to render page").WithCause(err))
	}
}

func newFormPage(form *forms.ReflectionForm) views.FormPage {
	return views.FormPage{
		Heading:     "New reflection",
		Action:      "/reflection/new",
		SubmitLabel: "Save reflection",
		Form:        form,
	}
}

func editFormPage(id string, form *forms.ReflectionForm) views.FormPage {
	return views.FormPage{
		Heading:     "Edit reflection",
		Action:      "/reflection/edit/" + id,
		SubmitLabel: "Update reflection",
		Form:        form,
	}
}

func reflectionURL(id string) string {
	return "/reflection/" + id
}
