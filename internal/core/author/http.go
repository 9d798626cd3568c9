package author

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shelfmark/shelfmark/internal/catalog/lifecycle"
	"github.com/shelfmark/shelfmark/internal/catalog/query"
	"github.com/shelfmark/shelfmark/internal/platform/apperr"
	requestutil "github.com/shelfmark/shelfmark/internal/platform/request"
	"github.com/shelfmark/shelfmark/internal/platform/respond"
	"github.com/shelfmark/shelfmark/internal/platform/validate"
	"github.com/shelfmark/shelfmark/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAuthors)
	router.Get("/trash", handler.listTrash)
	router.Get("/resolve", handler.resolveAuthor)
	router.Get("/{id}", handler.getAuthor)
	router.Post("/", handler.createAuthor)
	router.Post("/restore", handler.restoreBatch)
	router.Post("/{id}/restore", handler.restoreAuthor)
	router.Patch("/{id}", handler.updateAuthor)
	router.Delete("/{id}", handler.deleteAuthor)
	router.Delete("/{id}/purge", handler.purgeAuthor)
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plan, fieldErrors := query.Compile(listSchema, request.URL.Query())
	if len(fieldErrors) > 0 {
		respond.Error(writer, request, apperr.ValidationError("Invalid query parameters", fieldErrors...))
		return
	}

	authors, total, err := handler.service.ListAuthors(request.Context(), ownerID, plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, authors, pagination.NewMeta(total, len(authors), plan.Limit, plan.Offset))
}

func (handler *Handler) listTrash(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	authors, err := handler.service.TrashedAuthors(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, authors)
}

func (handler *Handler) resolveAuthor(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := request.URL.Query()

	var id *int64
	if raw := params.Get("id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			respond.Error(writer, request, validate.RequiredError("id", "must be a positive integer id"))
			return
		}
		id = &parsed
	}

	var name *string
	if raw := params.Get("name"); raw != "" {
		name = &raw
	}

	resolvedID, err := handler.service.ResolveAuthor(request.Context(), ownerID, id, name, params.Get("include_trashed") == "true")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"id": resolvedID})
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.service.GetAuthor(request.Context(), ownerID, authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Author
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateAuthor(request.Context(), ownerID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Author
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateAuthor(request.Context(), ownerID, authorID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAuthor(request.Context(), ownerID, authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restoreAuthor(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mode, err := lifecycle.ParseMode(request.URL.Query().Get("mode"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	outcome, err := handler.service.RestoreAuthor(request.Context(), ownerID, authorID, mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, outcome)
}

func (handler *Handler) restoreBatch(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		IDs  []int64 `json:"ids"`
		Mode string  `json:"mode"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(input.IDs) == 0 {
		respond.Error(writer, request, validate.RequiredError("ids", "must contain at least one id"))
		return
	}

	mode, err := lifecycle.ParseMode(input.Mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	outcome, err := handler.service.RestoreAuthors(request.Context(), ownerID, input.IDs, mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, outcome)
}

func (handler *Handler) purgeAuthor(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PurgeAuthor(request.Context(), ownerID, authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
