package book

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
	router.Get("/", handler.listBooks)
	router.Get("/trash", handler.listTrash)
	router.Get("/resolve", handler.resolveBook)
	router.Get("/{id}", handler.getBook)
	router.Post("/", handler.createBook)
	router.Post("/restore", handler.restoreBatch)
	router.Post("/{id}/restore", handler.restoreBook)
	router.Patch("/{id}", handler.updateBook)
	router.Delete("/{id}", handler.deleteBook)
	router.Delete("/{id}/purge", handler.purgeBook)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
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

	books, total, err := handler.service.ListBooks(request.Context(), ownerID, plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(total, len(books), plan.Limit, plan.Offset))
}

func (handler *Handler) listTrash(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.TrashedBooks(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) resolveBook(writer http.ResponseWriter, request *http.Request) {
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

	var isbn *string
	if raw := params.Get("isbn"); raw != "" {
		isbn = &raw
	}
	var title *string
	if raw := params.Get("title"); raw != "" {
		title = &raw
	}

	resolvedID, err := handler.service.ResolveBook(request.Context(), ownerID, id, isbn, title, params.Get("include_trashed") == "true")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"id": resolvedID})
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), ownerID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), ownerID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), ownerID, bookID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), ownerID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restoreBook(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mode, err := lifecycle.ParseMode(request.URL.Query().Get("mode"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	outcome, err := handler.service.RestoreBook(request.Context(), ownerID, bookID, mode)
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

	outcome, err := handler.service.RestoreBooks(request.Context(), ownerID, input.IDs, mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, outcome)
}

func (handler *Handler) purgeBook(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PurgeBook(request.Context(), ownerID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
