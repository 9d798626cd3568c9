package booktype

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
	router.Get("/", handler.listBookTypes)
	router.Get("/trash", handler.listTrash)
	router.Get("/resolve", handler.resolveBookType)
	router.Get("/{id}", handler.getBookType)
	router.Post("/", handler.createBookType)
	router.Post("/restore", handler.restoreBatch)
	router.Post("/{id}/restore", handler.restoreBookType)
	router.Patch("/{id}", handler.updateBookType)
	router.Delete("/{id}", handler.deleteBookType)
	router.Delete("/{id}/purge", handler.purgeBookType)
}

func (handler *Handler) listBookTypes(writer http.ResponseWriter, request *http.Request) {
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

	bookTypes, total, err := handler.service.ListBookTypes(request.Context(), ownerID, plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, bookTypes, pagination.NewMeta(total, len(bookTypes), plan.Limit, plan.Offset))
}

func (handler *Handler) listTrash(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookTypes, err := handler.service.TrashedBookTypes(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bookTypes)
}

func (handler *Handler) resolveBookType(writer http.ResponseWriter, request *http.Request) {
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

	resolvedID, err := handler.service.ResolveBookType(request.Context(), ownerID, id, name, params.Get("include_trashed") == "true")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"id": resolvedID})
}

func (handler *Handler) getBookType(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookTypeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookType, err := handler.service.GetBookType(request.Context(), ownerID, bookTypeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bookType)
}

func (handler *Handler) createBookType(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BookType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBookType(request.Context(), ownerID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBookType(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookTypeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BookType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBookType(request.Context(), ownerID, bookTypeID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBookType(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookTypeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBookType(request.Context(), ownerID, bookTypeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restoreBookType(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookTypeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mode, err := lifecycle.ParseMode(request.URL.Query().Get("mode"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	outcome, err := handler.service.RestoreBookType(request.Context(), ownerID, bookTypeID, mode)
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

	outcome, err := handler.service.RestoreBookTypes(request.Context(), ownerID, input.IDs, mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, outcome)
}

func (handler *Handler) purgeBookType(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookTypeID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PurgeBookType(request.Context(), ownerID, bookTypeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
