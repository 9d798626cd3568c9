package copy

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
	router.Get("/", handler.listCopies)
	router.Get("/trash", handler.listTrash)
	router.Get("/resolve", handler.resolveCopy)
	router.Get("/{id}", handler.getCopy)
	router.Post("/", handler.createCopy)
	router.Post("/restore", handler.restoreBatch)
	router.Post("/{id}/restore", handler.restoreCopy)
	router.Patch("/{id}", handler.updateCopy)
	router.Delete("/{id}", handler.deleteCopy)
	router.Delete("/{id}/purge", handler.purgeCopy)
}

func (handler *Handler) listCopies(writer http.ResponseWriter, request *http.Request) {
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

	copies, total, err := handler.service.ListCopies(request.Context(), ownerID, plan)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, copies, pagination.NewMeta(total, len(copies), plan.Limit, plan.Offset))
}

func (handler *Handler) listTrash(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copies, err := handler.service.TrashedCopies(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, copies)
}

func (handler *Handler) resolveCopy(writer http.ResponseWriter, request *http.Request) {
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

	var code *string
	if raw := params.Get("code"); raw != "" {
		code = &raw
	}

	resolvedID, err := handler.service.ResolveCopy(request.Context(), ownerID, id, code, params.Get("include_trashed") == "true")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"id": resolvedID})
}

func (handler *Handler) getCopy(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copyID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copy, err := handler.service.GetCopy(request.Context(), ownerID, copyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, copy)
}

func (handler *Handler) createCopy(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Copy
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCopy(request.Context(), ownerID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCopy(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copyID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Copy
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCopy(request.Context(), ownerID, copyID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCopy(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copyID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCopy(request.Context(), ownerID, copyID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restoreCopy(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copyID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mode, err := lifecycle.ParseMode(request.URL.Query().Get("mode"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	outcome, err := handler.service.RestoreCopy(request.Context(), ownerID, copyID, mode)
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

	outcome, err := handler.service.RestoreCopies(request.Context(), ownerID, input.IDs, mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, outcome)
}

func (handler *Handler) purgeCopy(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredOwnerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copyID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PurgeCopy(request.Context(), ownerID, copyID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
